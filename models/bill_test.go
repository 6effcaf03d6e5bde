package models

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset)
}

func TestPendingAmount(t *testing.T) {
	b := Bill{TotalAmount: 1000, PaidAmount: 300}
	if got := b.PendingAmount(); got != 700 {
		t.Fatalf("expected 700, got %v", got)
	}

	// Raw subtraction may go negative, display never does
	b = Bill{TotalAmount: 1000, PaidAmount: 1200}
	if got := b.PendingAmount(); got != -200 {
		t.Fatalf("expected raw -200, got %v", got)
	}
	if got := b.DisplayPending(); got != 0 {
		t.Fatalf("expected display 0, got %v", got)
	}
}

func TestOverdueDays(t *testing.T) {
	today := time.Now()
	cases := []struct {
		due  time.Time
		want int
	}{
		{day(1), 0},
		{today, 0},
		{day(-1), 1},
		{day(-10), 10},
	}
	for i, tc := range cases {
		b := Bill{DueDate: tc.due}
		if got := b.OverdueDays(today); got != tc.want {
			t.Fatalf("case %d: expected %d, got %d", i, tc.want, got)
		}
	}
}

func TestStatusPrecedence(t *testing.T) {
	today := time.Now()
	cases := []struct {
		name string
		bill Bill
		want BillStatus
	}{
		// A settled bill is Paid even past its due date
		{"paid beats overdue", Bill{TotalAmount: 500, PaidAmount: 500, DueDate: day(-5)}, StatusPaid},
		{"overpaid is paid", Bill{TotalAmount: 500, PaidAmount: 600, DueDate: day(-5)}, StatusPaid},
		// An overdue bill is Overdue even when partially paid
		{"overdue beats partial", Bill{TotalAmount: 500, PaidAmount: 200, DueDate: day(-1)}, StatusOverdue},
		{"overdue unpaid", Bill{TotalAmount: 500, PaidAmount: 0, DueDate: day(-1)}, StatusOverdue},
		{"partial due today", Bill{TotalAmount: 500, PaidAmount: 200, DueDate: today}, StatusPartial},
		{"partial due tomorrow", Bill{TotalAmount: 500, PaidAmount: 200, DueDate: day(1)}, StatusPartial},
		{"pending due today", Bill{TotalAmount: 500, PaidAmount: 0, DueDate: today}, StatusPending},
		{"pending future", Bill{TotalAmount: 500, PaidAmount: 0, DueDate: day(3)}, StatusPending},
	}
	for _, tc := range cases {
		if got := tc.bill.StatusOn(today); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestValidPaymentMode(t *testing.T) {
	if !ValidPaymentMode(PaymentModeCash) || !ValidPaymentMode(PaymentModeCheque) {
		t.Fatal("cash and cheque must be valid modes")
	}
	for _, mode := range []string{"", "card", "CASH", "upi"} {
		if ValidPaymentMode(mode) {
			t.Fatalf("mode %q should be invalid", mode)
		}
	}
}
