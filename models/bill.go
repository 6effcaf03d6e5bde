package models

import (
	"time"

	"billtrack-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillStatus string

const (
	StatusPaid    BillStatus = "Paid"
	StatusOverdue BillStatus = "Overdue"
	StatusPartial BillStatus = "Partial"
	StatusPending BillStatus = "Pending"
)

type Bill struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	Client   Client    `gorm:"foreignKey:ClientID"`

	// Optional owning agent. Nulled when the user is removed, the bill stays.
	SalesPersonID *uuid.UUID `gorm:"type:uuid;index"`
	SalesPerson   *User      `gorm:"foreignKey:SalesPersonID;constraint:OnDelete:SET NULL"`

	BillNumber  string    `gorm:"not null"`
	BillDate    time.Time `gorm:"not null"`
	DueDate     time.Time `gorm:"not null"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null"`
	PaidAmount  float64   `gorm:"type:decimal(10,2);default:0.0"`

	Payments []Payment `gorm:"foreignKey:BillID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Bill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// PendingAmount returns the raw remainder. It can go negative while a
// payment is being absorbed; aggregation uses it verbatim, display code
// goes through DisplayPending.
func (b *Bill) PendingAmount() float64 {
	return b.TotalAmount - b.PaidAmount
}

// DisplayPending never reports a negative remainder.
func (b *Bill) DisplayPending() float64 {
	pending := b.PendingAmount()
	if pending < 0 {
		return 0
	}
	return pending
}

// OverdueDays returns whole days past the due date, 0 when the bill is not
// yet due or due today.
func (b *Bill) OverdueDays(today time.Time) int {
	days := utils.DaysBetween(b.DueDate, today)
	if days < 0 {
		return 0
	}
	return days
}

// StatusOn derives the bill status for the given day. Order matters: a
// settled bill is Paid even past its due date, and an overdue bill is
// Overdue even when partially paid.
func (b *Bill) StatusOn(today time.Time) BillStatus {
	if b.PendingAmount() <= 0 {
		return StatusPaid
	}
	if utils.BeginningOfDay(b.DueDate).Before(utils.BeginningOfDay(today)) {
		return StatusOverdue
	}
	if b.PaidAmount > 0 {
		return StatusPartial
	}
	return StatusPending
}

func (b *Bill) Status() BillStatus {
	return b.StatusOn(time.Now())
}
