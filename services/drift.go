// services/drift.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"techcity-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DriftChecker recomputes yesterday's aggregation every night and
// compares it against the saved snapshot. It only logs mismatches;
// saving a corrected snapshot stays an explicit operator action.
type DriftChecker struct {
	recon *ReconciliationService
}

func NewDriftChecker(db *gorm.DB) *DriftChecker {
	return &DriftChecker{recon: NewReconciliationService(db)}
}

func (d *DriftChecker) StartScheduler() {
	c := cron.New()

	// Run nightly at 2 AM, after the day's entries have settled
	c.AddFunc("0 2 * * *", func() {
		date := time.Now().AddDate(0, 0, -1).Format(utils.ISODate)
		if err := d.CheckDate(context.Background(), date); err != nil {
			log.Printf("[DRIFT] check failed for %s: %v", date, err)
		}
	})

	c.Start()
	log.Println("Reconciliation drift checker started")
}

// CheckDate compares the saved snapshot for a date with a fresh
// aggregation. A missing snapshot is not drift — the operator may not
// have saved that day's report.
func (d *DriftChecker) CheckDate(ctx context.Context, date string) error {
	saved, err := d.recon.SavedReport(ctx, date)
	if err != nil {
		var nferr *NotFoundError
		if errors.As(err, &nferr) {
			log.Printf("[DRIFT] %s: no saved report, skipping", date)
			return nil
		}
		return err
	}

	fresh, err := d.recon.AggregateDay(ctx, date)
	if err != nil {
		return err
	}

	// generated-at/by are save-time stamps, not aggregation output
	fresh.GeneratedAt = saved.GeneratedAt
	fresh.GeneratedBy = saved.GeneratedBy

	savedJSON, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	freshJSON, err := json.Marshal(fresh)
	if err != nil {
		return err
	}

	if string(savedJSON) != string(freshJSON) {
		log.Printf("[DRIFT] %s: saved snapshot no longer matches underlying transactions", date)
		log.Printf("[DRIFT] %s: saved revenue %.2f, recomputed %.2f",
			date, saved.GrandTotals.TotalRevenue, fresh.GrandTotals.TotalRevenue)
		return nil
	}

	log.Printf("[DRIFT] %s: snapshot matches", date)
	return nil
}
