// controllers/payment.go
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

// RecordPaymentInput defines the expected JSON structure for posting a payment
type RecordPaymentInput struct {
	Amount       float64 `json:"amount" binding:"required"`
	PaymentMode  string  `json:"paymentMode" binding:"required,oneof=cash cheque"`
	ChequeNumber string  `json:"chequeNumber"`
}

// RecordPayment posts a payment against a bill and returns the updated
// ledger state together with any absorbed excess
func RecordPayment(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ledger := services.NewLedgerService(config.DB)
	result, err := ledger.RecordPayment(billUUID, input.Amount, input.PaymentMode, input.ChequeNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidPaymentMode):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":        result.Payment,
		"bill":           summarize(result.Bill),
		"absorbedExcess": result.Excess,
	})
}

// GetBillPayments retrieves the journal for a bill
func GetBillPayments(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
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

	var payments []models.Payment
	if err := config.DB.Where("bill_id = ?", bill.ID).
		Order("payment_date").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	total, err := models.TotalForBill(config.DB, bill.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to total payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":    payments,
		"journaled":   total,
		"paidAmount":  bill.PaidAmount,
		"totalAmount": bill.TotalAmount,
	})
}

// ReconcileBill recomputes the bill's paid amount from its journal
func ReconcileBill(c *gin.Context) {
	billUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID format")
		return
	}

	ledger := services.NewLedgerService(config.DB)
	result, err := ledger.Reconcile(billUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reconcile bill")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bill":     summarize(result.Bill),
		"mismatch": result.Mismatch,
	})
}

// ReversePayment appends a compensating entry for a mis-entered payment
func ReversePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	ledger := services.NewLedgerService(config.DB)
	result, err := ledger.ReversePayment(paymentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reverse payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bill":     summarize(result.Bill),
		"mismatch": result.Mismatch,
	})
}
