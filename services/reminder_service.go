// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"techcity-backend/models"
	"techcity-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService messages in-house installment customers whose next
// monthly payment is overdue.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendOverdueReminders)

	c.Start()
	log.Println("Installment reminder scheduler started")
}

// SendOverdueReminders scans open in-house installments and messages
// customers who have gone a full month cycle without a payment.
func (s *ReminderService) SendOverdueReminders() {
	log.Println("Starting installment reminder processing...")

	var sales []models.Sale
	err := s.db.
		Where("transaction_type = ? AND status = ?", models.TransactionInHouse, models.StatusCompleted).
		Find(&sales).Error
	if err != nil {
		log.Printf("Failed to fetch installment sales: %v", err)
		return
	}

	now := time.Now()
	for i := range sales {
		sale := &sales[i]
		plan := sale.InHouseInstallment
		if plan == nil || plan.IsBalancePaid || plan.CustomerPhone == "" {
			continue
		}
		if !paymentOverdue(sale, now) {
			continue
		}
		if s.recentlyReminded(sale.ID.String(), now) {
			continue
		}
		s.sendReminder(sale)
	}

	log.Println("Installment reminder processing completed")
}

// paymentOverdue reports whether a full monthly cycle has elapsed since
// the later of the sale date and the last recorded payment.
func paymentOverdue(sale *models.Sale, now time.Time) bool {
	last := sale.CreationInstant()
	if payments := sale.InHouseInstallment.SortedPayments(); len(payments) > 0 {
		last = time.UnixMilli(payments[len(payments)-1].Timestamp)
	}
	return utils.DaysBetween(last, now) >= 30
}

func (s *ReminderService) recentlyReminded(saleID string, now time.Time) bool {
	var count int64
	s.db.Model(&models.ReminderLog{}).
		Where("sale_id = ? AND status = ? AND sent_at > ?", saleID, "sent", now.AddDate(0, 0, -7)).
		Count(&count)
	return count > 0
}

func (s *ReminderService) sendReminder(sale *models.Sale) {
	plan := sale.InHouseInstallment
	remaining := DerivedRemaining(sale)
	message := fmt.Sprintf(
		"Hi %s, this is Techcity. Your monthly installment of %.2f is due. Remaining balance: %.2f. Thank you!",
		plan.CustomerName, plan.MonthlyAmount, remaining)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(plan.CustomerPhone, "+") {
		to = "whatsapp:" + plan.CustomerPhone
		channel = "whatsapp"
	} else {
		to = plan.CustomerPhone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", plan.CustomerPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", plan.CustomerPhone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", plan.CustomerPhone)
	}

	reminderLog := models.ReminderLog{
		SaleID:       sale.ID,
		CustomerName: plan.CustomerName,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for sale %s: %v", sale.ID, err)
	}
}
