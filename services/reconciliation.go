// services/reconciliation.go
package services

import (
	"context"
	"errors"
	"time"

	"techcity-backend/models"
	"techcity-backend/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReconciliationService aggregates a date's completed transactions into
// the sales, cash-flow and ledger summaries and persists one snapshot
// per date.
type ReconciliationService struct {
	db *gorm.DB
}

func NewReconciliationService(db *gorm.DB) *ReconciliationService {
	return &ReconciliationService{db: db}
}

// AggregateDay reads all completed device sales, accessory sales and
// service-ledger entries for the date and builds the summary. The three
// reads run in parallel; any failure aborts the whole report. Nothing
// is persisted here — saving is a separate, explicit step.
func (s *ReconciliationService) AggregateDay(ctx context.Context, date string) (*models.DailySummary, error) {
	if _, err := utils.ParseISODate(date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "date must be yyyy-mm-dd"}
	}

	var devices, accessories []models.Sale
	var entries []models.ServiceEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fetchSales(gctx, models.CategoryDevice, date, &devices)
	})
	g.Go(func() error {
		return s.fetchSales(gctx, models.CategoryAccessory, date, &accessories)
	})
	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Where("date = ? AND status = ?", date, models.StatusCompleted).
			Order("timestamp ASC").
			Find(&entries).Error
		if err != nil {
			return &AggregationError{Stage: "service entries", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildDailySummary(date, devices, accessories, entries), nil
}

func (s *ReconciliationService) fetchSales(ctx context.Context, category, date string, out *[]models.Sale) error {
	err := s.db.WithContext(ctx).
		Where("category = ? AND date = ? AND status = ?", category, date, models.StatusCompleted).
		Order("timestamp ASC").
		Find(out).Error
	if err != nil {
		return &AggregationError{Stage: category + " sales", Err: err}
	}
	return nil
}

// SaveReport upserts the snapshot keyed by date. Re-saving overwrites
// the prior snapshot in full — no merge — so the caller must confirm
// the action first. The generated-at/by stamp happens here, keeping
// AggregateDay output deterministic for unchanged input.
func (s *ReconciliationService) SaveReport(ctx context.Context, summary *models.DailySummary, generatedBy string) error {
	summary.GeneratedAt = time.Now()
	summary.GeneratedBy = generatedBy

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			UpdateAll: true,
		}).
		Create(summary).Error
	if err != nil {
		return &StoreError{Op: "save daily summary", Err: err}
	}
	return nil
}

// SavedReport loads the persisted snapshot for a date.
func (s *ReconciliationService) SavedReport(ctx context.Context, date string) (*models.DailySummary, error) {
	var summary models.DailySummary
	if err := s.db.WithContext(ctx).Where("date = ?", date).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "daily summary", ID: date}
		}
		return nil, &StoreError{Op: "load daily summary", Err: err}
	}
	return &summary, nil
}

// BuildDailySummary is the pure aggregation core. Inputs are assumed
// pre-filtered to status=completed and ordered by timestamp ascending,
// which keeps the id lists and totals deterministic.
func BuildDailySummary(date string, devices, accessories []models.Sale, entries []models.ServiceEntry) *models.DailySummary {
	summary := &models.DailySummary{
		Date:        date,
		DisplayDate: displayDate(date),
	}

	summary.SalesSummary = models.SalesByCategory{
		Devices:     summarizeSales(devices),
		Accessories: summarizeSales(accessories),
		Services:    summarizeServiceSales(entries),
	}

	summary.CashFlowSummary = models.CashFlowByCategory{
		Devices:     summarizeCashFlow(devices),
		Accessories: summarizeCashFlow(accessories),
		Services:    summarizeServiceCashFlow(entries),
	}

	summary.LedgerSummary = buildLedgerSummary(summary.CashFlowSummary)

	summary.TransactionCounts = models.TransactionCounts{
		Devices:     len(devices),
		Accessories: len(accessories),
		Services:    len(entries),
		Total:       len(devices) + len(accessories) + len(entries),
	}
	summary.TransactionIDs = models.TransactionIDs{
		Devices:     saleIDs(devices),
		Accessories: saleIDs(accessories),
		Services:    entryIDs(entries),
	}

	sales := summary.SalesSummary
	flow := summary.CashFlowSummary

	totalProduct := round2(sales.Devices.TotalAmount + sales.Accessories.TotalAmount)
	serviceFees := sales.Services.ServiceFees
	miscIncome := sales.Services.MiscIncome
	totalRevenue := round2(totalProduct + serviceFees + miscIncome)

	summary.RevenueBreakdown = models.RevenueBreakdown{
		DeviceSales:    sales.Devices.TotalAmount,
		AccessorySales: sales.Accessories.TotalAmount,
		ServiceFees:    serviceFees,
		MiscIncome:     miscIncome,
		TotalRevenue:   totalRevenue,
	}

	summary.GrandTotals = models.GrandTotals{
		TotalProductSales: totalProduct,
		TotalRevenue:      totalRevenue,
		TotalCashCollected: round2(flow.Devices.TotalInflow + flow.Accessories.TotalInflow +
			flow.Services.TotalInflow - flow.Services.TotalOutflow),
		TotalReceivablesCreated: round2(flow.Devices.HomeCreditReceivable + flow.Devices.SkyroReceivable +
			flow.Devices.InHouseReceivable + flow.Accessories.HomeCreditReceivable +
			flow.Accessories.SkyroReceivable + flow.Accessories.InHouseReceivable),
	}

	return summary
}

func summarizeSales(sales []models.Sale) models.SalesSummary {
	var out models.SalesSummary
	for i := range sales {
		sale := &sales[i]
		out.TotalCount++
		out.TotalAmount += sale.FinalPrice

		switch sale.TransactionType {
		case models.TransactionCash:
			out.Cash.Count++
			out.Cash.Amount += sale.FinalPrice

		case models.TransactionHC:
			out.HomeCredit.Count++
			out.HomeCredit.Amount += sale.FinalPrice
			if plan := sale.HomeCreditPayment; plan != nil {
				out.HomeCredit.Downpayment += plan.DownpaymentAmount
				out.HomeCredit.Balance += plan.Balance
			}

		case models.TransactionSkyro:
			out.Skyro.Count++
			out.Skyro.Amount += sale.FinalPrice
			if plan := sale.SkyroPayment; plan != nil {
				out.Skyro.Downpayment += plan.DownpaymentAmount
				out.Skyro.Balance += plan.Balance
			}

		case models.TransactionInHouse:
			out.InHouse.Count++
			out.InHouse.Amount += sale.FinalPrice
			if plan := sale.InHouseInstallment; plan != nil {
				out.InHouse.Downpayment += plan.DownpaymentAmount
				// in-house receivables include interest
				out.InHouse.Balance += plan.TotalAmountDue
			}
		}
	}

	out.TotalAmount = round2(out.TotalAmount)
	out.Cash.Amount = round2(out.Cash.Amount)
	out.HomeCredit = roundInstallment(out.HomeCredit)
	out.Skyro = roundInstallment(out.Skyro)
	out.InHouse = roundInstallment(out.InHouse)
	return out
}

func roundInstallment(v models.InstallmentSales) models.InstallmentSales {
	v.Amount = round2(v.Amount)
	v.Downpayment = round2(v.Downpayment)
	v.Balance = round2(v.Balance)
	return v
}

func summarizeCashFlow(sales []models.Sale) models.CashFlowSummary {
	var out models.CashFlowSummary
	for i := range sales {
		sale := &sales[i]
		switch sale.TransactionType {
		case models.TransactionCash:
			if plan := sale.CashPayment; plan != nil {
				out.Inflow.Add(plan.PaymentSource, plan.AmountPaid)
			}

		case models.TransactionHC:
			if plan := sale.HomeCreditPayment; plan != nil {
				out.Inflow.Add(plan.DownpaymentSource, plan.DownpaymentAmount)
				out.HomeCreditReceivable += plan.Balance
				out.BrandZeroSubsidy += plan.BrandZeroSubsidy
			}

		case models.TransactionSkyro:
			if plan := sale.SkyroPayment; plan != nil {
				out.Inflow.Add(plan.DownpaymentSource, plan.DownpaymentAmount)
				out.SkyroReceivable += plan.Balance
				out.BrandZeroSubsidy += plan.BrandZeroSubsidy
			}

		case models.TransactionInHouse:
			if plan := sale.InHouseInstallment; plan != nil {
				out.Inflow.Add(plan.DownpaymentSource, plan.DownpaymentAmount)
				out.InHouseReceivable += plan.TotalAmountDue
			}
		}
	}

	out.TotalInflow = round2(out.Inflow.Total())
	out.HomeCreditReceivable = round2(out.HomeCreditReceivable)
	out.SkyroReceivable = round2(out.SkyroReceivable)
	out.InHouseReceivable = round2(out.InHouseReceivable)
	out.BrandZeroSubsidy = round2(out.BrandZeroSubsidy)
	return out
}

func summarizeServiceSales(entries []models.ServiceEntry) models.ServiceSales {
	var out models.ServiceSales
	for _, e := range entries {
		out.Count++
		switch e.EntryType {
		case models.EntryCredit:
			if e.Kind == models.KindMiscIncome {
				out.MiscIncome += e.Amount
			} else {
				out.ServiceFees += e.Amount
			}
		case models.EntryDebit:
			out.Expenses += e.Amount
		}
	}
	out.ServiceFees = round2(out.ServiceFees)
	out.MiscIncome = round2(out.MiscIncome)
	out.Expenses = round2(out.Expenses)
	out.Net = round2(out.ServiceFees + out.MiscIncome - out.Expenses)
	return out
}

func summarizeServiceCashFlow(entries []models.ServiceEntry) models.ServiceCashFlowSummary {
	var out models.ServiceCashFlowSummary
	for _, e := range entries {
		switch e.EntryType {
		case models.EntryCredit:
			out.Inflow.Add(e.Source, e.Amount)
		case models.EntryDebit:
			out.Outflow.Add(e.Source, e.Amount)
		}
	}
	out.TotalInflow = round2(out.Inflow.Total())
	out.TotalOutflow = round2(out.Outflow.Total())
	return out
}

// buildLedgerSummary nets each payment-source bucket across all three
// categories: device + accessory inflow plus the service ledger's
// inflow minus outflow. The receivables line nets HC/Skyro balances
// against their Brand-Zero subsidy, since the subsidy is absorbed by
// the financing partner and never collected.
func buildLedgerSummary(flow models.CashFlowByCategory) models.LedgerSummaryData {
	dev, acc, svc := flow.Devices.Inflow, flow.Accessories.Inflow, flow.Services

	ledger := models.LedgerSummaryData{
		Cash:         round2(dev.Cash + acc.Cash + svc.Inflow.Cash - svc.Outflow.Cash),
		GCash:        round2(dev.GCash + acc.GCash + svc.Inflow.GCash - svc.Outflow.GCash),
		PayMaya:      round2(dev.PayMaya + acc.PayMaya + svc.Inflow.PayMaya - svc.Outflow.PayMaya),
		BankTransfer: round2(dev.BankTransfer + acc.BankTransfer),
		CreditCard:   round2(dev.CreditCard + acc.CreditCard),
		Others:       round2(dev.Others + acc.Others + svc.Inflow.Others - svc.Outflow.Others),
	}

	ledger.Receivables = round2(flow.Devices.HomeCreditReceivable + flow.Devices.SkyroReceivable -
		flow.Devices.BrandZeroSubsidy + flow.Devices.InHouseReceivable +
		flow.Accessories.HomeCreditReceivable + flow.Accessories.SkyroReceivable -
		flow.Accessories.BrandZeroSubsidy + flow.Accessories.InHouseReceivable)

	ledger.Total = round2(ledger.Cash + ledger.GCash + ledger.PayMaya +
		ledger.BankTransfer + ledger.CreditCard + ledger.Others + ledger.Receivables)
	return ledger
}

func saleIDs(sales []models.Sale) []string {
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID.String())
	}
	return ids
}

func entryIDs(entries []models.ServiceEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID.String())
	}
	return ids
}

func displayDate(date string) string {
	t, err := utils.ParseISODate(date)
	if err != nil {
		return date
	}
	return t.Format(utils.DisplayDate)
}
