// services/sales.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"techcity-backend/models"
	"techcity-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator identifies who performed an action, taken from the auth
// context.
type Operator struct {
	Name     string
	Location string
}

// CreateSaleInput is the raw checkout form.
type CreateSaleInput struct {
	Category string `json:"category" binding:"required,oneof=device accessory"`
	DeviceID string `json:"deviceId" binding:"required"`
	Date     string `json:"date"`

	Price           float64  `json:"price"`
	DiscountAmount  *float64 `json:"discountAmount"`
	DiscountPercent *float64 `json:"discountPercent"`

	TransactionType string                `json:"transactionType" binding:"required"`
	PaymentSource   string                `json:"paymentSource"`
	AccountDetails  models.AccountDetails `json:"accountDetails"`

	DownpaymentAmount float64 `json:"downpaymentAmount"`
	DownpaymentSource string  `json:"downpaymentSource"`

	InterestPercent float64 `json:"interestPercent"`
	MonthsToPay     int     `json:"monthsToPay"`

	BrandZero      bool    `json:"brandZero"`
	SubsidyPercent float64 `json:"subsidyPercent"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
}

// SalesService creates, lists and deletes completed transactions.
type SalesService struct {
	db *gorm.DB
}

func NewSalesService(db *gorm.DB) *SalesService {
	return &SalesService{db: db}
}

// buildSale bakes every derived field into a new Sale. The record is
// immutable after creation except for the payment-tracking fields the
// installment ledger owns.
func buildSale(in CreateSaleInput, op Operator, now time.Time) (*models.Sale, []string, error) {
	pricing, err := ComputePricing(PricingInput{
		Price:             in.Price,
		DiscountAmount:    in.DiscountAmount,
		DiscountPercent:   in.DiscountPercent,
		TransactionType:   in.TransactionType,
		DownpaymentAmount: in.DownpaymentAmount,
		InterestPercent:   in.InterestPercent,
		MonthsToPay:       in.MonthsToPay,
	})
	if err != nil {
		return nil, nil, err
	}

	date := in.Date
	if date == "" {
		date = now.Format(utils.ISODate)
	}
	day, err := utils.ParseISODate(date)
	if err != nil {
		return nil, nil, &ValidationError{Field: "date", Reason: "date must be yyyy-mm-dd"}
	}

	sale := &models.Sale{
		ID:              uuid.New(),
		Category:        in.Category,
		Date:            date,
		Month:           int(day.Month()),
		Year:            day.Year(),
		DateSold:        day.Format(utils.DisplayDate),
		Time:            now.Format("3:04 PM"),
		Timestamp:       now.UnixMilli(),
		User:            op.Name,
		UserLocation:    op.Location,
		DeviceID:        in.DeviceID,
		Price:           pricing.Price,
		DiscountAmount:  pricing.DiscountAmount,
		DiscountPercent: pricing.DiscountPercent,
		FinalPrice:      pricing.FinalPrice,
		TransactionType: in.TransactionType,
		Status:          models.StatusCompleted,
	}

	switch in.TransactionType {
	case models.TransactionCash:
		sale.CashPayment = &models.CashPayment{
			AmountPaid:     pricing.AmountDue,
			PaymentSource:  in.PaymentSource,
			AccountDetails: in.AccountDetails,
		}

	case models.TransactionHC, models.TransactionSkyro:
		plan := &models.InstallmentPlan{
			DownpaymentAmount: pricing.DownpaymentAmount,
			DownpaymentSource: in.DownpaymentSource,
			AccountDetails:    in.AccountDetails,
			Balance:           pricing.Balance,
			BrandZero:         in.BrandZero,
			SubsidyPercent:    in.SubsidyPercent,
		}
		if in.BrandZero {
			plan.BrandZeroSubsidy = round2(pricing.Balance * in.SubsidyPercent / 100)
		}
		if in.TransactionType == models.TransactionHC {
			sale.HomeCreditPayment = plan
		} else {
			sale.SkyroPayment = plan
		}

	case models.TransactionInHouse:
		if in.CustomerName == "" {
			return nil, nil, &ValidationError{Field: "customerName", Reason: "customer name is required for in-house installments"}
		}
		sale.InHouseInstallment = &models.InHousePlan{
			CustomerName:      in.CustomerName,
			CustomerPhone:     in.CustomerPhone,
			DownpaymentAmount: pricing.DownpaymentAmount,
			DownpaymentSource: in.DownpaymentSource,
			AccountDetails:    in.AccountDetails,
			InterestPercent:   in.InterestPercent,
			InterestAmount:    pricing.InterestAmount,
			MonthsToPay:       in.MonthsToPay,
			MonthlyAmount:     pricing.MonthlyAmount,
			Balance:           pricing.Balance,
			TotalAmountDue:    pricing.TotalAmountDue,
			RemainingBalance:  pricing.Balance,
			Payments:          []models.PaymentRecord{},
		}
	}

	return sale, pricing.Warnings, nil
}

// CreateSale persists a new completed transaction with all derived
// fields baked in at checkout.
func (s *SalesService) CreateSale(ctx context.Context, in CreateSaleInput, op Operator) (*models.Sale, []string, error) {
	sale, warnings, err := buildSale(in, op, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := s.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, nil, &StoreError{Op: "create sale", Err: err}
	}
	return sale, warnings, nil
}

// ListByDate returns a day's completed sales in display order: manual
// ranks first, then creation order.
func (s *SalesService) ListByDate(ctx context.Context, category, date string) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Where("category = ? AND date = ? AND status = ?", category, date, models.StatusCompleted).
		Order("timestamp ASC").
		Find(&sales).Error
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("list %s sales", category), Err: err}
	}
	SortSales(sales)
	return sales, nil
}

// Get loads one sale.
func (s *SalesService) Get(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "sale", ID: id.String()}
		}
		return nil, &StoreError{Op: "load sale", Err: err}
	}
	return &sale, nil
}

// Delete removes a sale. Deletion is an explicit operator action; there
// is no cascade into saved daily snapshots, which stay as-generated
// until re-saved.
func (s *SalesService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{})
	if res.Error != nil {
		return &StoreError{Op: "delete sale", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "sale", ID: id.String()}
	}
	return nil
}
