// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/services"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendReminder dispatches the overdue reminder messages for a bill. Delivery
// failures are reported per recipient and never fail the request.
func SendReminder(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var bill models.Bill
	if err := config.DB.Preload("Client").Preload("SalesPerson").
		First(&bill, "id = ?", billUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	notifier := services.NewNotifier(services.NotifierConfigFromEnv())
	logs := notifier.SendOverdueReminder(config.DB, &bill)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Reminder processed",
		"reminders": logs,
	})
}

// GetReminderLogs lists past reminder attempts for a bill
func GetReminderLogs(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var logs []models.ReminderLog
	if err := config.DB.Where("bill_id = ?", billUUID).
		Order("sent_at DESC").Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
