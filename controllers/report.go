// controllers/report.go
package controllers

import (
	"net/http"

	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles daily reconciliation reports.
type ReportController struct {
	Reconciliation *services.ReconciliationService
}

// PreviewReport aggregates the date's transactions without saving.
func (rc *ReportController) PreviewReport(c *gin.Context) {
	summary, err := rc.Reconciliation.AggregateDay(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type SaveReportInput struct {
	// Saving overwrites any prior snapshot for the date, so the client
	// must confirm explicitly.
	Confirm bool `json:"confirm"`
}

// SaveReport re-aggregates and persists the snapshot for the date.
func (rc *ReportController) SaveReport(c *gin.Context) {
	date := c.Param("date")

	var input SaveReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Confirm {
		utils.RespondWithError(c, http.StatusBadRequest, "Saving overwrites the existing report for this date; confirmation required")
		return
	}

	summary, err := rc.Reconciliation.AggregateDay(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	op := operatorFromContext(c)
	if err := rc.Reconciliation.SaveReport(c.Request.Context(), summary, op.Name); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SavedReport returns the persisted snapshot for the date.
func (rc *ReportController) SavedReport(c *gin.Context) {
	summary, err := rc.Reconciliation.SavedReport(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
