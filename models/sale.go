package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item categories. The original client kept devices and accessories in
// separate collections; here they share one table with a discriminator.
const (
	CategoryDevice    = "device"
	CategoryAccessory = "accessory"
)

// Sale statuses.
const (
	StatusCompleted = "completed"
	StatusVoided    = "voided"
)

// Sale is one completed transaction for a device or an accessory. All
// derived pricing fields are baked in at checkout and never recomputed,
// with the single exception of the in-house remaining balance, which the
// installment ledger owns.
type Sale struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Category string    `gorm:"size:16;index:idx_sales_cat_date,priority:1;not null" json:"category"`

	Date      string `gorm:"size:10;index:idx_sales_cat_date,priority:2;not null" json:"date"`
	Month     int    `gorm:"index" json:"month"`
	Year      int    `gorm:"index" json:"year"`
	DateSold  string `json:"dateSold"`
	Time      string `json:"time"`
	Timestamp int64  `gorm:"index;not null" json:"timestamp"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`

	User         string `json:"user"`
	UserLocation string `json:"userLocation"`
	DeviceID     string `gorm:"index" json:"deviceId"`

	Price           float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountAmount  float64 `gorm:"type:decimal(12,2);default:0.0" json:"discountAmount"`
	DiscountPercent float64 `gorm:"type:decimal(5,1);default:0.0" json:"discountPercent"`
	FinalPrice      float64 `gorm:"type:decimal(12,2);not null" json:"finalPrice"`

	TransactionType string `gorm:"size:32;index;not null" json:"transactionType"`
	Status          string `gorm:"size:16;index;default:'completed'" json:"status"`

	CashPayment        *CashPayment     `gorm:"type:jsonb" json:"cashPayment,omitempty"`
	HomeCreditPayment  *InstallmentPlan `gorm:"type:jsonb" json:"homeCreditPayment,omitempty"`
	SkyroPayment       *InstallmentPlan `gorm:"type:jsonb" json:"skyroPayment,omitempty"`
	InHouseInstallment *InHousePlan     `gorm:"type:jsonb" json:"inHouseInstallment,omitempty"`

	CreatedAt time.Time `json:"-"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Details resolves the tagged union selected by TransactionType.
func (s *Sale) Details() (PaymentDetails, error) {
	switch s.TransactionType {
	case TransactionCash:
		if s.CashPayment == nil {
			return nil, unknownType(s.TransactionType)
		}
		return s.CashPayment, nil
	case TransactionHC:
		if s.HomeCreditPayment == nil {
			return nil, unknownType(s.TransactionType)
		}
		return s.HomeCreditPayment, nil
	case TransactionSkyro:
		if s.SkyroPayment == nil {
			return nil, unknownType(s.TransactionType)
		}
		return s.SkyroPayment, nil
	case TransactionInHouse:
		if s.InHouseInstallment == nil {
			return nil, unknownType(s.TransactionType)
		}
		return s.InHouseInstallment, nil
	}
	return nil, unknownType(s.TransactionType)
}

// InstallmentDetails returns the HC/Skyro plan for financed sales, nil
// for everything else.
func (s *Sale) InstallmentDetails() *InstallmentPlan {
	switch s.TransactionType {
	case TransactionHC:
		return s.HomeCreditPayment
	case TransactionSkyro:
		return s.SkyroPayment
	}
	return nil
}

// CreationInstant converts the wall-clock millisecond timestamp.
func (s *Sale) CreationInstant() time.Time {
	return time.UnixMilli(s.Timestamp)
}
