// services/ledger.go
package services

import (
	"errors"

	"billtrack-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrInvalidPaymentMode = errors.New("payment mode must be cash or cheque")
)

// LedgerService owns the monetary state of bills: posting payments to the
// journal, keeping the denormalized paid amount in sync, and repairing it
// from the journal when the two drift apart.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// PaymentResult reports the journal entry created by RecordPayment together
// with any excess that was absorbed by the clamp, so callers can decide
// whether to track it as client credit.
type PaymentResult struct {
	Payment models.Payment
	Bill    models.Bill
	Excess  float64
}

// RecordPayment appends a journal entry for the bill and increases its paid
// amount, clamped so it never exceeds the total. The increment and the clamp
// run as separate atomic UPDATEs inside one transaction, so two concurrent
// postings against the same bill cannot lose money to a read-then-write race.
func (s *LedgerService) RecordPayment(billID uuid.UUID, amount float64, mode string, chequeNumber string) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidPaymentMode(mode) {
		return nil, ErrInvalidPaymentMode
	}

	var result PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, "id = ?", billID).Error; err != nil {
			return err
		}

		payment := models.Payment{
			BillID:      bill.ID,
			Amount:      amount,
			PaymentMode: mode,
		}
		// Cheque number is only meaningful for cheque payments
		if mode == models.PaymentModeCheque && chequeNumber != "" {
			payment.ChequeNumber = &chequeNumber
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bill{}).
			Where("id = ?", bill.ID).
			Update("paid_amount", gorm.Expr("paid_amount + ?", amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bill{}).
			Where("id = ? AND paid_amount > total_amount", bill.ID).
			Update("paid_amount", gorm.Expr("total_amount")).Error; err != nil {
			return err
		}

		var updated models.Bill
		if err := tx.First(&updated, "id = ?", bill.ID).Error; err != nil {
			return err
		}

		excess := bill.PaidAmount + amount - updated.TotalAmount
		if excess < 0 {
			excess = 0
		}

		result = PaymentResult{Payment: payment, Bill: updated, Excess: excess}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReconcileResult reports the repaired paid amount and whether the cached
// value disagreed with the journal. A mismatch is advisory, not an error.
type ReconcileResult struct {
	Bill     models.Bill
	Mismatch bool
}

// Reconcile recomputes the bill's paid amount from its journal entries,
// clamped into [0, total]. This is the only operation that may decrease the
// paid amount, and it is run after any bulk journal edit.
func (s *LedgerService) Reconcile(billID uuid.UUID) (*ReconcileResult, error) {
	var result ReconcileResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return reconcileBill(tx, billID, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func reconcileBill(tx *gorm.DB, billID uuid.UUID, result *ReconcileResult) error {
	var bill models.Bill
	if err := tx.First(&bill, "id = ?", billID).Error; err != nil {
		return err
	}

	total, err := models.TotalForBill(tx, bill.ID)
	if err != nil {
		return err
	}
	if total < 0 {
		total = 0
	}
	if total > bill.TotalAmount {
		total = bill.TotalAmount
	}

	result.Mismatch = total != bill.PaidAmount

	if err := tx.Model(&models.Bill{}).
		Where("id = ?", bill.ID).
		Update("paid_amount", total).Error; err != nil {
		return err
	}

	bill.PaidAmount = total
	result.Bill = bill
	return nil
}

// ReversePayment corrects a mis-entered payment by appending a compensating
// negative journal entry and reconciling the bill. The original entry is
// never touched, so the journal stays append-only.
func (s *LedgerService) ReversePayment(paymentID uuid.UUID) (*ReconcileResult, error) {
	var result ReconcileResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			return err
		}

		reversal := models.Payment{
			BillID:       payment.BillID,
			Amount:       -payment.Amount,
			PaymentMode:  payment.PaymentMode,
			ChequeNumber: payment.ChequeNumber,
		}
		if err := tx.Create(&reversal).Error; err != nil {
			return err
		}

		return reconcileBill(tx, payment.BillID, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
