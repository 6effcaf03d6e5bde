package controllers

import (
	"net/http"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type CollectionDashboard struct {
	Today        string        `json:"today"`
	TodaysBills  []BillSummary `json:"todaysBills"`
	OverdueBills []BillSummary `json:"overdueBills"`
	FutureBills  []BillSummary `json:"futureBills"`
	TotalPending float64       `json:"totalPending"`
}

// GetCollectionDashboard returns the bills due today, overdue and upcoming,
// plus the total pending across all unpaid bills
func GetCollectionDashboard(c *gin.Context) {
	today := utils.BeginningOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	var todaysBills []models.Bill
	if err := config.DB.Preload("Client").
		Where("due_date >= ? AND due_date < ? AND paid_amount < total_amount", today, tomorrow).
		Find(&todaysBills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve today's bills")
		return
	}

	var overdueBills []models.Bill
	if err := config.DB.Preload("Client").
		Where("due_date < ? AND paid_amount < total_amount", today).
		Find(&overdueBills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve overdue bills")
		return
	}

	var futureBills []models.Bill
	if err := config.DB.Preload("Client").
		Where("due_date >= ? AND paid_amount < total_amount", tomorrow).
		Order("due_date").
		Find(&futureBills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve future bills")
		return
	}

	// Aggregate uses the raw subtraction, unclamped
	var totalPending float64
	if err := config.DB.Model(&models.Bill{}).
		Where("paid_amount < total_amount").
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Scan(&totalPending).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute total pending")
		return
	}

	c.JSON(http.StatusOK, CollectionDashboard{
		Today:        today.Format("2006-01-02"),
		TodaysBills:  billSummaries(todaysBills),
		OverdueBills: billSummaries(overdueBills),
		FutureBills:  billSummaries(futureBills),
		TotalPending: totalPending,
	})
}

type ClientOutstanding struct {
	ClientID     string  `json:"clientId"`
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	TotalPending float64 `json:"totalPending"`
}

// GetClientOutstandingSummary aggregates pending amounts per client over
// their unpaid bills, highest pending first
func GetClientOutstandingSummary(c *gin.Context) {
	var summary []ClientOutstanding
	err := config.DB.Raw(`
        SELECT c.id AS client_id, c.name AS client_name, c.phone AS client_phone,
               SUM(b.total_amount - b.paid_amount) AS total_pending
        FROM bills b
        JOIN clients c ON c.id = b.client_id
        WHERE b.paid_amount < b.total_amount
        GROUP BY c.id, c.name, c.phone
        ORDER BY total_pending DESC
    `).Scan(&summary).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute outstanding summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
