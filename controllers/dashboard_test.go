package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCollectionDashboard(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter()

	client := createClient(t, db, "Asha Traders", "9876543210")
	today := time.Now()

	createBill(t, db, client, "B-1", 1000, 0, today)                   // due today
	createBill(t, db, client, "B-2", 500, 100, today.AddDate(0, 0, -5)) // overdue
	createBill(t, db, client, "B-3", 800, 0, today.AddDate(0, 0, 7))    // future
	createBill(t, db, client, "B-4", 300, 300, today.AddDate(0, 0, -2)) // settled, excluded

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/dashboard", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp CollectionDashboard
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.TodaysBills) != 1 || resp.TodaysBills[0].Bill.BillNumber != "B-1" {
		t.Fatalf("unexpected today's bills: %+v", resp.TodaysBills)
	}
	if len(resp.OverdueBills) != 1 || resp.OverdueBills[0].Bill.BillNumber != "B-2" {
		t.Fatalf("unexpected overdue bills: %+v", resp.OverdueBills)
	}
	if resp.OverdueBills[0].Status != "Overdue" || resp.OverdueBills[0].OverdueDays != 5 {
		t.Fatalf("unexpected overdue summary: %+v", resp.OverdueBills[0])
	}
	if len(resp.FutureBills) != 1 || resp.FutureBills[0].Bill.BillNumber != "B-3" {
		t.Fatalf("unexpected future bills: %+v", resp.FutureBills)
	}
	// 1000 + 400 + 800 pending across unpaid bills
	if resp.TotalPending != 2200 {
		t.Fatalf("expected total pending 2200, got %v", resp.TotalPending)
	}
}

func TestClientOutstandingSummary(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter()

	alpha := createClient(t, db, "Alpha", "9000000001")
	beta := createClient(t, db, "Beta", "9000000002")
	today := time.Now()

	// Alpha pending: 300 + 700 = 1000
	createBill(t, db, alpha, "A-1", 500, 200, today)
	createBill(t, db, alpha, "A-2", 700, 0, today)
	// Beta pending: 150; settled bill excluded
	createBill(t, db, beta, "B-1", 400, 250, today)
	createBill(t, db, beta, "B-2", 900, 900, today)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/clients/summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary []ClientOutstanding
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(summary))
	}
	// Highest pending first
	if summary[0].ClientName != "Alpha" || summary[0].TotalPending != 1000 {
		t.Fatalf("unexpected first row: %+v", summary[0])
	}
	if summary[1].ClientName != "Beta" || summary[1].TotalPending != 150 {
		t.Fatalf("unexpected second row: %+v", summary[1])
	}
}
