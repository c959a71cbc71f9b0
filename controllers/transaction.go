// controllers/transaction.go
package controllers

import (
	"net/http"

	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionController handles sale entry, listing and manual
// reordering.
type TransactionController struct {
	Sales    *services.SalesService
	Ordering *services.OrderingService
}

// PreviewPricing runs the pricing calculator without persisting
// anything, so the entry form can show derived fields and clamp
// warnings live.
func (tc *TransactionController) PreviewPricing(c *gin.Context) {
	var input services.PricingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := services.ComputePricing(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateSale records a completed transaction with all derived fields
// baked in.
func (tc *TransactionController) CreateSale(c *gin.Context) {
	var input services.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, warnings, err := tc.Sales.CreateSale(c.Request.Context(), input, operatorFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sale":     sale,
		"warnings": warnings,
	})
}

// ListSales returns a day's completed sales in display order.
func (tc *TransactionController) ListSales(c *gin.Context) {
	category := c.Query("category")
	date := c.Query("date")
	if category == "" || date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "category and date are required")
		return
	}
	if _, err := utils.ParseISODate(date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "date must be yyyy-mm-dd")
		return
	}

	sales, err := tc.Sales.ListByDate(c.Request.Context(), category, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale returns one sale.
func (tc *TransactionController) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	sale, err := tc.Sales.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale removes a sale by explicit operator action.
func (tc *TransactionController) DeleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	if err := tc.Sales.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

type ReorderInput struct {
	Category string      `json:"category" binding:"required,oneof=device accessory"`
	Date     string      `json:"date" binding:"required"`
	OrderIDs []uuid.UUID `json:"orderIds" binding:"required,min=1"`
}

// Reorder applies a manual ranking, persisting only the ranks that
// changed.
func (tc *TransactionController) Reorder(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	writes, err := tc.Ordering.Reorder(c.Request.Context(), input.Category, input.Date, input.OrderIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": len(writes),
		"writes":  writes,
	})
}
