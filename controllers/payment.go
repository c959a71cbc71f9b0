// controllers/payment.go
package controllers

import (
	"net/http"

	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentController handles in-house installment payment tracking.
type PaymentController struct {
	Ledger *services.LedgerService
}

type RecordPaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Source string  `json:"source" binding:"required"`
}

// RecordPayment appends one partial payment to an in-house sale.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	record, err := pc.Ledger.RecordPayment(c.Request.Context(), saleID, input.Amount, input.Source)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment": record,
		"settled": record.RemainingAfter <= 0,
	})
}

// PaymentHistory returns the sale's payments ordered by record
// timestamp.
func (pc *PaymentController) PaymentHistory(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	payments, err := pc.Ledger.PaymentHistory(c.Request.Context(), saleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
