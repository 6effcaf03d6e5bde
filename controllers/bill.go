// controllers/bill.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBillInput defines the expected JSON structure for creating a bill
type CreateBillInput struct {
	ClientID      uuid.UUID  `json:"clientId" binding:"required"`
	SalesPersonID *uuid.UUID `json:"salesPersonId"`
	BillNumber    string     `json:"billNumber"`
	BillDate      *time.Time `json:"billDate"`
	DueDate       time.Time  `json:"dueDate" binding:"required"`
	TotalAmount   float64    `json:"totalAmount" binding:"min=0"`
}

// UpdateBillInput defines the expected JSON structure for updating a bill
type UpdateBillInput struct {
	SalesPersonID *uuid.UUID `json:"salesPersonId"`
	BillNumber    *string    `json:"billNumber"`
	BillDate      *time.Time `json:"billDate"`
	DueDate       *time.Time `json:"dueDate"`
	TotalAmount   *float64   `json:"totalAmount" binding:"omitempty,min=0"`
}

// BillSummary is a bill together with its derived ledger fields
type BillSummary struct {
	Bill          models.Bill       `json:"bill"`
	PendingAmount float64           `json:"pendingAmount"`
	OverdueDays   int               `json:"overdueDays"`
	Status        models.BillStatus `json:"status"`
}

func summarize(bill models.Bill) BillSummary {
	return BillSummary{
		Bill:          bill,
		PendingAmount: bill.DisplayPending(),
		OverdueDays:   bill.OverdueDays(time.Now()),
		Status:        bill.Status(),
	}
}

func billSummaries(bills []models.Bill) []BillSummary {
	summaries := make([]BillSummary, 0, len(bills))
	for _, bill := range bills {
		summaries = append(summaries, summarize(bill))
	}
	return summaries
}

// CreateBill creates a new bill for a client
func CreateBill(c *gin.Context) {
	var input CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate client exists
	var client models.Client
	if err := config.DB.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Validate sales person when provided
	if input.SalesPersonID != nil {
		var salesPerson models.User
		if err := config.DB.First(&salesPerson, "id = ?", *input.SalesPersonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Sales person not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	billDate := time.Now()
	if input.BillDate != nil {
		billDate = *input.BillDate
	}

	bill := models.Bill{
		ID:            uuid.New(),
		ClientID:      input.ClientID,
		SalesPersonID: input.SalesPersonID,
		BillNumber:    input.BillNumber,
		BillDate:      billDate,
		DueDate:       input.DueDate,
		TotalAmount:   input.TotalAmount,
		PaidAmount:    0,
	}

	// Bill numbers are free text and not required unique
	if bill.BillNumber == "" {
		bill.BillNumber = "BILL-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
	}

	if err := config.DB.Create(&bill).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	c.JSON(http.StatusCreated, summarize(bill))
}

// GetBills retrieves all bills, optionally filtered by derived status
func GetBills(c *gin.Context) {
	var bills []models.Bill
	if err := config.DB.Preload("Client").Order("due_date").Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	summaries := billSummaries(bills)

	if status := c.Query("status"); status != "" {
		filtered := make([]BillSummary, 0, len(summaries))
		for _, s := range summaries {
			if string(s.Status) == status {
				filtered = append(filtered, s)
			}
		}
		summaries = filtered
	}

	c.JSON(http.StatusOK, summaries)
}

// GetBill retrieves a specific bill with its payment history
func GetBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var bill models.Bill
	if err := config.DB.Preload("Client").Preload("Payments").
		First(&bill, "id = ?", billUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, summarize(bill))
}

// UpdateBill updates a bill's administrative fields. Paid amount is owned by
// the ledger and is not editable here.
func UpdateBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var input UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var bill models.Bill
	if err := config.DB.First(&bill, "id = ?", billUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.SalesPersonID != nil {
		var salesPerson models.User
		if err := config.DB.First(&salesPerson, "id = ?", *input.SalesPersonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Sales person not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		bill.SalesPersonID = input.SalesPersonID
	}

	if input.BillNumber != nil {
		bill.BillNumber = *input.BillNumber
	}
	if input.BillDate != nil {
		bill.BillDate = *input.BillDate
	}
	if input.DueDate != nil {
		bill.DueDate = *input.DueDate
	}
	if input.TotalAmount != nil {
		bill.TotalAmount = *input.TotalAmount
	}

	if err := config.DB.Save(&bill).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update bill")
		return
	}

	c.JSON(http.StatusOK, summarize(bill))
}

// DeleteBill removes a bill together with its payments
func DeleteBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var bill models.Bill
	if err := tx.First(&bill, "id = ?", billUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Cascade: payments first, then the bill
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.Payment{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payments")
		return
	}

	if err := tx.Delete(&bill).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bill")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
