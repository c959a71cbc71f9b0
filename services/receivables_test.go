package services

import (
	"testing"

	"techcity-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hcReceivable() ReceivableItem {
	return ReceivableItem{SaleID: uuid.New(), TransactionType: models.TransactionHC, Balance: 5000}
}

func inHouseReceivable() ReceivableItem {
	return ReceivableItem{SaleID: uuid.New(), TransactionType: models.TransactionInHouse, Balance: 7700}
}

func TestValidateSelectionExclusivity(t *testing.T) {
	var verr *ValidationError

	t.Run("multiple financed items allowed", func(t *testing.T) {
		current := []ReceivableItem{hcReceivable(), {SaleID: uuid.New(), TransactionType: models.TransactionSkyro}}
		assert.NoError(t, ValidateSelection(current, hcReceivable()))
	})

	t.Run("single in-house allowed", func(t *testing.T) {
		assert.NoError(t, ValidateSelection(nil, inHouseReceivable()))
	})

	t.Run("in-house rejected alongside anything", func(t *testing.T) {
		err := ValidateSelection([]ReceivableItem{hcReceivable()}, inHouseReceivable())
		require.ErrorAs(t, err, &verr)

		err = ValidateSelection([]ReceivableItem{inHouseReceivable()}, inHouseReceivable())
		require.ErrorAs(t, err, &verr)
	})

	t.Run("financed rejected alongside in-house", func(t *testing.T) {
		err := ValidateSelection([]ReceivableItem{inHouseReceivable()}, hcReceivable())
		require.ErrorAs(t, err, &verr)
	})
}

func TestBuildReceivable(t *testing.T) {
	t.Run("unpaid financed sale projected", func(t *testing.T) {
		sale := models.Sale{
			ID:              uuid.New(),
			Category:        models.CategoryDevice,
			TransactionType: models.TransactionHC,
			FinalPrice:      12000,
			HomeCreditPayment: &models.InstallmentPlan{
				DownpaymentAmount: 3000,
				Balance:           9000,
				BrandZero:         true,
				BrandZeroSubsidy:  450,
			},
		}
		item, ok := buildReceivable(sale)
		require.True(t, ok)
		assert.Equal(t, 9000.0, item.Balance)
		assert.Equal(t, 450.0, item.BrandZeroSubsidy)
		assert.False(t, item.InHouse())
	})

	t.Run("settled sale dropped", func(t *testing.T) {
		sale := models.Sale{
			TransactionType: models.TransactionSkyro,
			SkyroPayment:    &models.InstallmentPlan{Balance: 4000, IsBalancePaid: true},
		}
		_, ok := buildReceivable(sale)
		assert.False(t, ok)
	})

	t.Run("cash sale dropped", func(t *testing.T) {
		sale := models.Sale{
			TransactionType: models.TransactionCash,
			CashPayment:     &models.CashPayment{AmountPaid: 2000},
		}
		_, ok := buildReceivable(sale)
		assert.False(t, ok)
	})

	t.Run("in-house balance is derived, not cached", func(t *testing.T) {
		sale := *inHouseSale(9000, 2000, 10, 7)
		sale.InHouseInstallment.Payments = []models.PaymentRecord{{Amount: 3000, Timestamp: 1}}
		sale.InHouseInstallment.RemainingBalance = 7700 // stale

		item, ok := buildReceivable(sale)
		require.True(t, ok)
		assert.Equal(t, 4700.0, item.Balance)
		assert.True(t, item.InHouse())
	})
}
