// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one outbound installment-payment reminder so a
// customer is not messaged twice for the same due cycle.
type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	SaleID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerName string    `gorm:"type:varchar(128)"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
