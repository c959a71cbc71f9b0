package services

import (
	"testing"
	"time"

	"techcity-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOperator = Operator{Name: "jdc", Location: "Tarlac"}

func TestBuildSaleCash(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)

	sale, warnings, err := buildSale(CreateSaleInput{
		Category:        models.CategoryDevice,
		DeviceID:        "SM-A156",
		Price:           10000,
		DiscountAmount:  f(1000),
		TransactionType: models.TransactionCash,
		PaymentSource:   models.SourceGCash,
	}, testOperator, now)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 9000.0, sale.FinalPrice)
	assert.Equal(t, sale.Price-sale.DiscountAmount, sale.FinalPrice)
	assert.Equal(t, "2025-03-14", sale.Date)
	assert.Equal(t, 3, sale.Month)
	assert.Equal(t, 2025, sale.Year)
	assert.Equal(t, now.UnixMilli(), sale.Timestamp)
	assert.Equal(t, 0, sale.SortOrder)
	assert.Equal(t, "jdc", sale.User)
	assert.Equal(t, models.StatusCompleted, sale.Status)

	require.NotNil(t, sale.CashPayment)
	assert.Equal(t, 9000.0, sale.CashPayment.AmountPaid)
	assert.Equal(t, models.SourceGCash, sale.CashPayment.PaymentSource)

	details, err := sale.Details()
	require.NoError(t, err)
	assert.IsType(t, &models.CashPayment{}, details)
}

func TestBuildSaleFinancedWithSubsidy(t *testing.T) {
	sale, _, err := buildSale(CreateSaleInput{
		Category:          models.CategoryDevice,
		DeviceID:          "IP15-128",
		Price:             12000,
		TransactionType:   models.TransactionHC,
		DownpaymentAmount: 3000,
		DownpaymentSource: models.SourceCash,
		BrandZero:         true,
		SubsidyPercent:    5,
	}, testOperator, time.Now())
	require.NoError(t, err)

	plan := sale.HomeCreditPayment
	require.NotNil(t, plan)
	assert.Equal(t, 9000.0, plan.Balance)
	assert.False(t, plan.IsBalancePaid)
	// subsidy reduces the net receivable in reports, not the stored balance
	assert.Equal(t, 450.0, plan.BrandZeroSubsidy)
}

func TestBuildSaleInHouse(t *testing.T) {
	sale, _, err := buildSale(CreateSaleInput{
		Category:          models.CategoryDevice,
		DeviceID:          "SM-S24",
		Price:             10000,
		DiscountAmount:    f(1000),
		TransactionType:   models.TransactionInHouse,
		DownpaymentAmount: 2000,
		DownpaymentSource: models.SourceCash,
		InterestPercent:   10,
		MonthsToPay:       7,
		CustomerName:      "Maria Santos",
	}, testOperator, time.Now())
	require.NoError(t, err)

	plan := sale.InHouseInstallment
	require.NotNil(t, plan)
	assert.Equal(t, 700.0, plan.InterestAmount)
	assert.Equal(t, 7700.0, plan.Balance)
	assert.Equal(t, 7700.0, plan.TotalAmountDue)
	assert.Equal(t, 7700.0, plan.RemainingBalance)
	assert.Equal(t, 1100.0, plan.MonthlyAmount)
	assert.Empty(t, plan.Payments)
	assert.Equal(t, plan.Balance, OriginalBalance(sale))
}

func TestBuildSaleInHouseRequiresCustomer(t *testing.T) {
	_, _, err := buildSale(CreateSaleInput{
		Category:        models.CategoryDevice,
		DeviceID:        "X",
		Price:           1000,
		TransactionType: models.TransactionInHouse,
	}, testOperator, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBuildSaleClampWarningsSurface(t *testing.T) {
	sale, warnings, err := buildSale(CreateSaleInput{
		Category:        models.CategoryAccessory,
		DeviceID:        "CASE-01",
		Price:           -50,
		TransactionType: models.TransactionCash,
	}, testOperator, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, 0.0, sale.Price)
	assert.Equal(t, 0.0, sale.FinalPrice)
}

func TestBuildSaleBadDate(t *testing.T) {
	_, _, err := buildSale(CreateSaleInput{
		Category:        models.CategoryDevice,
		DeviceID:        "X",
		Price:           100,
		Date:            "14-03-2025",
		TransactionType: models.TransactionCash,
	}, testOperator, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
