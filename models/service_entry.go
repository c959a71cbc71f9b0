package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service-ledger entry types.
const (
	EntryCredit = "credit"
	EntryDebit  = "debit"
)

// Credit kinds. Service fees and miscellaneous income are reported as
// separate revenue lines.
const (
	KindServiceFee = "serviceFee"
	KindMiscIncome = "miscIncome"
)

// ServiceEntry is one credit or debit line in the services ledger:
// repair fees, load/misc income, and petty cash-outs. Services settle
// through the walk-in channels only, so bank-transfer and credit-card
// sources are not accepted here.
type ServiceEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Timestamp int64     `gorm:"index;not null" json:"timestamp"`

	Description string  `json:"description"`
	EntryType   string  `gorm:"size:8;not null" json:"entryType"`
	Kind        string  `gorm:"size:16" json:"kind,omitempty"`
	Amount      float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Source      string  `gorm:"size:16;not null" json:"source"`
	Status      string  `gorm:"size:16;index;default:'completed'" json:"status"`
	User        string  `json:"user"`

	CreatedAt time.Time `json:"-"`
}

func (e *ServiceEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// ValidServiceSource reports whether s is a channel the services ledger
// accepts.
func ValidServiceSource(s string) bool {
	switch s {
	case SourceCash, SourceGCash, SourcePayMaya, SourceOthers:
		return true
	}
	return false
}
