package services

import (
	"testing"

	"techcity-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputePricingCash(t *testing.T) {
	res, err := ComputePricing(PricingInput{
		Price:           10000,
		DiscountAmount:  f(1000),
		TransactionType: models.TransactionCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 9000.0, res.FinalPrice)
	assert.Equal(t, 9000.0, res.AmountDue)
	assert.Equal(t, 10.0, res.DiscountPercent)
	assert.Empty(t, res.Warnings)
}

func TestComputePricingDiscountDerivation(t *testing.T) {
	tests := []struct {
		name        string
		in          PricingInput
		wantAmount  float64
		wantPercent float64
		wantFinal   float64
		wantWarn    bool
	}{
		{
			name:        "percent drives amount",
			in:          PricingInput{Price: 2500, DiscountPercent: f(15), TransactionType: models.TransactionCash},
			wantAmount:  375,
			wantPercent: 15,
			wantFinal:   2125,
		},
		{
			name:        "amount drives percent with rounding",
			in:          PricingInput{Price: 2999, DiscountAmount: f(100), TransactionType: models.TransactionCash},
			wantAmount:  100,
			wantPercent: 3.3,
			wantFinal:   2899,
		},
		{
			name:        "amount clamped to price",
			in:          PricingInput{Price: 500, DiscountAmount: f(900), TransactionType: models.TransactionCash},
			wantAmount:  500,
			wantPercent: 100,
			wantFinal:   0,
			wantWarn:    true,
		},
		{
			name:        "percent clamped to 100",
			in:          PricingInput{Price: 500, DiscountPercent: f(250), TransactionType: models.TransactionCash},
			wantAmount:  500,
			wantPercent: 100,
			wantFinal:   0,
			wantWarn:    true,
		},
		{
			name:        "negative discount clamped to zero",
			in:          PricingInput{Price: 500, DiscountAmount: f(-20), TransactionType: models.TransactionCash},
			wantAmount:  0,
			wantPercent: 0,
			wantFinal:   500,
			wantWarn:    true,
		},
		{
			name:        "zero price yields zero percent",
			in:          PricingInput{Price: 0, DiscountAmount: f(0), TransactionType: models.TransactionCash},
			wantAmount:  0,
			wantPercent: 0,
			wantFinal:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ComputePricing(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAmount, res.DiscountAmount)
			assert.Equal(t, tc.wantPercent, res.DiscountPercent)
			assert.Equal(t, tc.wantFinal, res.FinalPrice)
			if tc.wantWarn {
				assert.NotEmpty(t, res.Warnings)
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestComputePricingNegativePriceClamped(t *testing.T) {
	res, err := ComputePricing(PricingInput{Price: -100, TransactionType: models.TransactionCash})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Price)
	assert.Equal(t, 0.0, res.AmountDue)
	assert.NotEmpty(t, res.Warnings)
}

func TestComputePricingFinanced(t *testing.T) {
	res, err := ComputePricing(PricingInput{
		Price:             12000,
		DiscountAmount:    f(0),
		TransactionType:   models.TransactionHC,
		DownpaymentAmount: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, res.Balance)

	// down payment clamps to the discounted price
	res, err = ComputePricing(PricingInput{
		Price:             1000,
		DiscountAmount:    f(200),
		TransactionType:   models.TransactionSkyro,
		DownpaymentAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, 800.0, res.DownpaymentAmount)
	assert.Equal(t, 0.0, res.Balance)
	assert.NotEmpty(t, res.Warnings)
}

func TestComputePricingInHouse(t *testing.T) {
	res, err := ComputePricing(PricingInput{
		Price:             10000,
		DiscountAmount:    f(1000),
		TransactionType:   models.TransactionInHouse,
		DownpaymentAmount: 2000,
		InterestPercent:   10,
		MonthsToPay:       7,
	})
	require.NoError(t, err)

	assert.Equal(t, 9000.0, res.FinalPrice)
	assert.Equal(t, 700.0, res.InterestAmount)
	assert.Equal(t, 7700.0, res.Balance)
	assert.Equal(t, 7700.0, res.TotalAmountDue)
	assert.Equal(t, 1100.0, res.MonthlyAmount)
}

func TestComputePricingInHouseZeroMonths(t *testing.T) {
	res, err := ComputePricing(PricingInput{
		Price:           5000,
		TransactionType: models.TransactionInHouse,
		InterestPercent: 5,
		MonthsToPay:     0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.MonthlyAmount)
}

func TestComputePricingUnknownMethod(t *testing.T) {
	_, err := ComputePricing(PricingInput{Price: 100, TransactionType: "Layaway"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
