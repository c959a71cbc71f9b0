package models

import (
	"time"

	"techcity-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator account. Every sale and saved report records the
// operator's name and branch location.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role     string `gorm:"type:varchar(20);not null"` // 'admin' or 'staff'
	Location string `gorm:"type:varchar(64);not null"` // branch name

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
