// services/ledger.go
package services

import (
	"context"
	"errors"
	"time"

	"techcity-backend/models"
	"techcity-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentEpsilon absorbs float rounding when a customer pays off the
// exact remaining balance.
const paymentEpsilon = 0.01

// LedgerService tracks an in-house sale's interest, balance and
// partial-payment history over its lifetime.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// OriginalBalance computes (finalPrice − downpayment) + interestAmount.
//
// Migration shim: records written by older client versions may lack
// interestAmount (only the percent was stored), and the oldest lack the
// financing split entirely. The fallback chain rederives what it can
// and bottoms out at finalPrice.
func OriginalBalance(sale *models.Sale) float64 {
	plan := sale.InHouseInstallment
	if plan == nil {
		return sale.FinalPrice
	}

	interest := plan.InterestAmount
	if interest == 0 && plan.InterestPercent > 0 {
		interest = round2((sale.FinalPrice - plan.DownpaymentAmount) * plan.InterestPercent / 100)
	}

	if plan.DownpaymentAmount == 0 && interest == 0 && plan.TotalAmountDue == 0 {
		return sale.FinalPrice
	}
	return round2((sale.FinalPrice - plan.DownpaymentAmount) + interest)
}

// DerivedRemaining is the authoritative remaining balance:
// originalBalance − Σ payments, clamped at 0. The persisted
// remainingBalance column is a query-time cache and is never trusted
// over this derivation.
func DerivedRemaining(sale *models.Sale) float64 {
	plan := sale.InHouseInstallment
	if plan == nil {
		return 0
	}
	remaining := round2(OriginalBalance(sale) - plan.PaidTotal())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// applyPayment validates and applies one partial payment against the
// in-memory sale. State machine: Open (remaining > 0) → Settled
// (remaining ≤ 0, isBalancePaid, terminal).
func applyPayment(sale *models.Sale, amount float64, source string, now time.Time) (*models.PaymentRecord, error) {
	plan := sale.InHouseInstallment
	if plan == nil || sale.TransactionType != models.TransactionInHouse {
		return nil, &ValidationError{Field: "sale", Reason: "not an in-house installment sale"}
	}
	if plan.IsBalancePaid {
		return nil, &ValidationError{Field: "sale", Reason: "installment is already settled"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "payment amount must be positive"}
	}

	remaining := DerivedRemaining(sale)
	if amount > remaining+paymentEpsilon {
		return nil, &ValidationError{Field: "amount", Reason: "payment exceeds remaining balance"}
	}

	record := models.PaymentRecord{
		Date:           now.Format(utils.ISODate),
		Amount:         amount,
		RemainingAfter: round2(remaining - amount),
		Source:         source,
		Timestamp:      now.UnixMilli(),
	}
	if record.RemainingAfter < 0 {
		record.RemainingAfter = 0
	}

	plan.Payments = append(plan.Payments, record)
	plan.RemainingBalance = record.RemainingAfter
	if record.RemainingAfter <= 0 {
		plan.RemainingBalance = 0
		plan.IsBalancePaid = true
	}
	return &record, nil
}

// RecordPayment appends one partial payment to an in-house sale. The
// read-validate-write cycle runs inside a store transaction with a row
// lock so two operators paying the same balance cannot both pass the
// remaining-balance check.
func (s *LedgerService) RecordPayment(ctx context.Context, saleID uuid.UUID, amount float64, source string) (*models.PaymentRecord, error) {
	var record *models.PaymentRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", saleID).
			First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "sale", ID: saleID.String()}
			}
			return &StoreError{Op: "load sale", Err: err}
		}

		rec, err := applyPayment(&sale, amount, source, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Model(&sale).Update("in_house_installment", sale.InHouseInstallment).Error; err != nil {
			return &StoreError{Op: "save payment", Err: err}
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PaymentHistory returns the sale's payments ordered by record
// timestamp.
func (s *LedgerService) PaymentHistory(ctx context.Context, saleID uuid.UUID) ([]models.PaymentRecord, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).Where("id = ?", saleID).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "sale", ID: saleID.String()}
		}
		return nil, &StoreError{Op: "load sale", Err: err}
	}
	if sale.InHouseInstallment == nil {
		return nil, &ValidationError{Field: "sale", Reason: "not an in-house installment sale"}
	}
	return sale.InHouseInstallment.SortedPayments(), nil
}
