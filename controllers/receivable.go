// controllers/receivable.go
package controllers

import (
	"net/http"

	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivableController surfaces unpaid balances and settles them.
type ReceivableController struct {
	Receivables *services.ReceivablesService
}

// ListReceivables returns all unpaid financed sales, newest first.
func (rc *ReceivableController) ListReceivables(c *gin.Context) {
	items, err := rc.Receivables.ListReceivables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type SelectionInput struct {
	Current []services.ReceivableItem `json:"current"`
	Next    services.ReceivableItem   `json:"next"`
}

// ValidateSelection checks the cross-type exclusivity rule for the
// client's pending selection. A violation is a notice for the UI to
// revert the attempt, not a hard failure.
func (rc *ReceivableController) ValidateSelection(c *gin.Context) {
	var input SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := services.ValidateSelection(input.Current, input.Next); err != nil {
		c.JSON(http.StatusOK, gin.H{"allowed": false, "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": true})
}

type MarkPaidInput struct {
	SaleIDs []uuid.UUID `json:"saleIds" binding:"required,min=1"`
}

// MarkPaid settles the selected HC/Skyro balances best-effort and
// reports per-item outcomes.
func (rc *ReceivableController) MarkPaid(c *gin.Context) {
	var input MarkPaidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := rc.Receivables.BulkMarkPaid(c.Request.Context(), input.SaleIDs)
	c.JSON(http.StatusOK, result)
}
