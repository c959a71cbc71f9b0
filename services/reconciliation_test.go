package services

import (
	"encoding/json"
	"testing"

	"techcity-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-03-14"

func cashSale(category string, amount float64, source string, ts int64) models.Sale {
	return models.Sale{
		ID:              uuid.New(),
		Category:        category,
		Date:            testDate,
		Timestamp:       ts,
		Price:           amount,
		FinalPrice:      amount,
		TransactionType: models.TransactionCash,
		Status:          models.StatusCompleted,
		CashPayment:     &models.CashPayment{AmountPaid: amount, PaymentSource: source},
	}
}

func hcSale(category string, finalPrice, down, subsidy float64, ts int64) models.Sale {
	return models.Sale{
		ID:              uuid.New(),
		Category:        category,
		Date:            testDate,
		Timestamp:       ts,
		Price:           finalPrice,
		FinalPrice:      finalPrice,
		TransactionType: models.TransactionHC,
		Status:          models.StatusCompleted,
		HomeCreditPayment: &models.InstallmentPlan{
			DownpaymentAmount: down,
			DownpaymentSource: models.SourceCash,
			Balance:           finalPrice - down,
			BrandZero:         subsidy > 0,
			BrandZeroSubsidy:  subsidy,
		},
	}
}

func serviceEntry(entryType, kind string, amount float64, source string, ts int64) models.ServiceEntry {
	return models.ServiceEntry{
		ID:        uuid.New(),
		Date:      testDate,
		Timestamp: ts,
		EntryType: entryType,
		Kind:      kind,
		Amount:    amount,
		Source:    source,
		Status:    models.StatusCompleted,
	}
}

func TestBuildDailySummaryLedgerCashBucket(t *testing.T) {
	devices := []models.Sale{cashSale(models.CategoryDevice, 5000, models.SourceCash, 1)}
	accessories := []models.Sale{cashSale(models.CategoryAccessory, 1200, models.SourceCash, 2)}
	entries := []models.ServiceEntry{
		serviceEntry(models.EntryCredit, models.KindServiceFee, 800, models.SourceCash, 3),
		serviceEntry(models.EntryDebit, "", 300, models.SourceCash, 4),
	}

	summary := BuildDailySummary(testDate, devices, accessories, entries)

	assert.Equal(t, 6700.0, summary.LedgerSummary.Cash)
	assert.Equal(t, 0.0, summary.LedgerSummary.Receivables)
}

func TestBuildDailySummarySalesByMethod(t *testing.T) {
	inHouse := *inHouseSale(9000, 2000, 10, 7)
	inHouse.Date = testDate
	inHouse.Timestamp = 5

	devices := []models.Sale{
		cashSale(models.CategoryDevice, 5000, models.SourceGCash, 1),
		hcSale(models.CategoryDevice, 12000, 3000, 450, 2),
		inHouse,
	}

	summary := BuildDailySummary(testDate, devices, nil, nil)
	dev := summary.SalesSummary.Devices

	assert.Equal(t, 1, dev.Cash.Count)
	assert.Equal(t, 5000.0, dev.Cash.Amount)

	assert.Equal(t, 1, dev.HomeCredit.Count)
	assert.Equal(t, 3000.0, dev.HomeCredit.Downpayment)
	assert.Equal(t, 9000.0, dev.HomeCredit.Balance)

	// in-house balance column carries totalAmountDue (interest included)
	assert.Equal(t, 1, dev.InHouse.Count)
	assert.Equal(t, 2000.0, dev.InHouse.Downpayment)
	assert.Equal(t, 7700.0, dev.InHouse.Balance)

	assert.Equal(t, 3, dev.TotalCount)
	assert.Equal(t, 26000.0, dev.TotalAmount)
}

func TestBuildDailySummaryCashFlowAndReceivables(t *testing.T) {
	inHouse := *inHouseSale(9000, 2000, 10, 7)
	inHouse.Date = testDate
	inHouse.Timestamp = 3
	inHouse.InHouseInstallment.DownpaymentSource = models.SourceGCash

	devices := []models.Sale{
		hcSale(models.CategoryDevice, 12000, 3000, 450, 1),
		inHouse,
	}
	accessories := []models.Sale{
		cashSale(models.CategoryAccessory, 1500, models.SourceBankTransfer, 2),
	}

	summary := BuildDailySummary(testDate, devices, accessories, nil)
	dev := summary.CashFlowSummary.Devices

	// downpayments route into their source buckets
	assert.Equal(t, 3000.0, dev.Inflow.Cash)
	assert.Equal(t, 2000.0, dev.Inflow.GCash)
	assert.Equal(t, 5000.0, dev.TotalInflow)

	assert.Equal(t, 9000.0, dev.HomeCreditReceivable)
	assert.Equal(t, 7700.0, dev.InHouseReceivable)
	assert.Equal(t, 450.0, dev.BrandZeroSubsidy)

	acc := summary.CashFlowSummary.Accessories
	assert.Equal(t, 1500.0, acc.Inflow.BankTransfer)

	// ledger receivables net HC/Skyro against the subsidy
	assert.Equal(t, 9000.0-450.0+7700.0, summary.LedgerSummary.Receivables)

	// grand total receivables are gross
	assert.Equal(t, 16700.0, summary.GrandTotals.TotalReceivablesCreated)
}

func TestBuildDailySummaryRevenue(t *testing.T) {
	devices := []models.Sale{cashSale(models.CategoryDevice, 20000, models.SourceCash, 1)}
	accessories := []models.Sale{cashSale(models.CategoryAccessory, 2500, models.SourceCash, 2)}
	entries := []models.ServiceEntry{
		serviceEntry(models.EntryCredit, models.KindServiceFee, 1200, models.SourceCash, 3),
		serviceEntry(models.EntryCredit, models.KindMiscIncome, 300, models.SourceGCash, 4),
		serviceEntry(models.EntryDebit, "", 500, models.SourceCash, 5),
	}

	summary := BuildDailySummary(testDate, devices, accessories, entries)

	assert.Equal(t, 22500.0, summary.GrandTotals.TotalProductSales)
	assert.Equal(t, 24000.0, summary.GrandTotals.TotalRevenue)
	assert.Equal(t, 24000.0, summary.RevenueBreakdown.TotalRevenue)
	assert.Equal(t, 1200.0, summary.RevenueBreakdown.ServiceFees)
	assert.Equal(t, 300.0, summary.RevenueBreakdown.MiscIncome)

	// expenses reduce net service position but not revenue
	assert.Equal(t, 1000.0, summary.SalesSummary.Services.Net)

	assert.Equal(t, models.TransactionCounts{Devices: 1, Accessories: 1, Services: 3, Total: 5},
		summary.TransactionCounts)
}

func TestBuildDailySummaryIdempotent(t *testing.T) {
	inHouse := *inHouseSale(9000, 2000, 10, 7)
	inHouse.ID = uuid.New()
	inHouse.Date = testDate
	inHouse.Timestamp = 9

	devices := []models.Sale{
		cashSale(models.CategoryDevice, 5000, models.SourceCash, 1),
		hcSale(models.CategoryDevice, 12000, 3000, 450, 2),
		inHouse,
	}
	accessories := []models.Sale{cashSale(models.CategoryAccessory, 1200, models.SourcePayMaya, 3)}
	entries := []models.ServiceEntry{
		serviceEntry(models.EntryCredit, models.KindServiceFee, 800, models.SourceCash, 4),
		serviceEntry(models.EntryDebit, "", 300, models.SourceOthers, 5),
	}

	first := BuildDailySummary(testDate, devices, accessories, entries)
	second := BuildDailySummary(testDate, devices, accessories, entries)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildDailySummaryEmptyDay(t *testing.T) {
	summary := BuildDailySummary(testDate, nil, nil, nil)

	assert.Equal(t, 0, summary.TransactionCounts.Total)
	assert.Equal(t, 0.0, summary.GrandTotals.TotalRevenue)
	assert.Equal(t, 0.0, summary.LedgerSummary.Total)
	assert.Equal(t, "March 14, 2025", summary.DisplayDate)
}

func TestSourceBucketsUnknownSourceFallsToOthers(t *testing.T) {
	var b models.SourceBuckets
	b.Add("Cheque", 250)
	assert.Equal(t, 250.0, b.Others)
	assert.Equal(t, 250.0, b.Total())
}
