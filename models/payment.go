package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentModeCash   = "cash"
	PaymentModeCheque = "cheque"
)

// Payment is an append-only journal entry of funds received against a bill.
// Entries are never edited; a mis-entered payment is corrected with a
// compensating negative entry.
type Payment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	BillID uuid.UUID `gorm:"type:uuid;index;not null"`

	Amount       float64 `gorm:"type:decimal(10,2);not null"`
	PaymentMode  string  `gorm:"type:varchar(15);not null"`
	ChequeNumber *string
	PaymentDate  time.Time `gorm:"not null"`

	CreatedAt time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	return
}

func ValidPaymentMode(mode string) bool {
	return mode == PaymentModeCash || mode == PaymentModeCheque
}

// TotalForBill sums the journal for a bill, 0 when there are no entries.
// This is the reconciliation source of truth for Bill.PaidAmount.
func TotalForBill(db *gorm.DB, billID uuid.UUID) (float64, error) {
	var total float64
	err := db.Model(&Payment{}).
		Where("bill_id = ?", billID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
