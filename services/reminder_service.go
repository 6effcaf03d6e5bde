// services/reminder_service.go
package services

import (
	"log"
	"time"

	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type ReminderService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewReminderService(db *gorm.DB, notifier *Notifier) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendOverdueReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendOverdueReminders messages every client holding an overdue unpaid bill
func (s *ReminderService) SendOverdueReminders() {
	log.Println("Starting overdue reminder sweep...")

	today := utils.BeginningOfDay(time.Now())

	var bills []models.Bill
	if err := s.db.Preload("Client").Preload("SalesPerson").
		Where("due_date < ? AND paid_amount < total_amount", today).
		Find(&bills).Error; err != nil {
		log.Printf("Failed to fetch overdue bills: %v", err)
		return
	}

	for i := range bills {
		s.notifier.SendOverdueReminder(s.db, &bills[i])
	}

	log.Printf("Overdue reminder sweep completed, %d bills processed", len(bills))
}
