// controllers/service_entry.go
package controllers

import (
	"net/http"
	"time"

	"techcity-backend/config"
	"techcity-backend/models"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateServiceEntryInput struct {
	Date        string  `json:"date"`
	Description string  `json:"description" binding:"required"`
	EntryType   string  `json:"entryType" binding:"required,oneof=credit debit"`
	Kind        string  `json:"kind" binding:"omitempty,oneof=serviceFee miscIncome"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Source      string  `json:"source" binding:"required"`
}

// CreateServiceEntry records one credit or debit line in the services
// ledger.
func CreateServiceEntry(c *gin.Context) {
	var input CreateServiceEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidServiceSource(input.Source) {
		utils.RespondWithError(c, http.StatusBadRequest, "Service entries accept cash, GCash, PayMaya or Others only")
		return
	}
	if input.EntryType == models.EntryCredit && input.Kind == "" {
		input.Kind = models.KindServiceFee
	}

	now := time.Now()
	date := input.Date
	if date == "" {
		date = now.Format(utils.ISODate)
	}
	day, err := utils.ParseISODate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "date must be yyyy-mm-dd")
		return
	}

	op := operatorFromContext(c)
	entry := models.ServiceEntry{
		Date:        date,
		Month:       int(day.Month()),
		Year:        day.Year(),
		Timestamp:   now.UnixMilli(),
		Description: input.Description,
		EntryType:   input.EntryType,
		Kind:        input.Kind,
		Amount:      input.Amount,
		Source:      input.Source,
		Status:      models.StatusCompleted,
		User:        op.Name,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListServiceEntries returns a day's completed service-ledger entries.
func ListServiceEntries(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := utils.ParseISODate(date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "date must be yyyy-mm-dd")
		return
	}

	var entries []models.ServiceEntry
	if err := config.DB.
		Where("date = ? AND status = ?", date, models.StatusCompleted).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}
