package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billtrack-backend/models"

	"github.com/google/uuid"
)

func testNotifier(endpoint string) *Notifier {
	return NewNotifier(NotifierConfig{
		EndpointURL:  endpoint,
		CountryCode:  "91",
		BusinessName: "Suhagan Creations",
		Timeout:      time.Second,
	})
}

func overdueBill() *models.Bill {
	salesID := uuid.New()
	return &models.Bill{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Client: models.Client{
			Name:  "Meera Textiles",
			Phone: "9812345678",
		},
		SalesPersonID: &salesID,
		SalesPerson: &models.User{
			ID:    salesID,
			Name:  "Ravi",
			Phone: "9899999999",
		},
		BillNumber:  "B-42",
		DueDate:     time.Now().AddDate(0, 0, -3),
		TotalAmount: 1000,
		PaidAmount:  400,
	}
}

func TestSendPrefixesCountryCode(t *testing.T) {
	var received bridgeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode bridge request: %v", err)
		}
		json.NewEncoder(w).Encode(bridgeResponse{Status: "Message sent successfully"})
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	channel, err := notifier.Send("98123-45678", "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if channel != "whatsapp" {
		t.Fatalf("expected whatsapp channel, got %s", channel)
	}
	if received.Number != "919812345678" {
		t.Fatalf("expected prefixed number 919812345678, got %s", received.Number)
	}
	if received.Message != "hello" {
		t.Fatalf("unexpected message: %s", received.Message)
	}
}

func TestSendReportsBridgeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(bridgeResponse{Error: "Failed to send message"})
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	if _, err := notifier.Send("9812345678", "hello"); err == nil {
		t.Fatal("expected an error from a failing bridge")
	}
}

func TestReminderMessages(t *testing.T) {
	notifier := testNotifier("http://localhost:3000/send-message")
	bill := overdueBill()
	today := time.Now()

	clientMsg := notifier.ClientReminderMessage(bill, today)
	for _, want := range []string{"Meera Textiles", "B-42", "600.00", "3 days", "Suhagan Creations"} {
		if !strings.Contains(clientMsg, want) {
			t.Fatalf("client message missing %q:\n%s", want, clientMsg)
		}
	}

	salesMsg := notifier.SalesAlertMessage(bill, today)
	for _, want := range []string{"Meera Textiles", "B-42", "600.00", "3 days", "follow up"} {
		if !strings.Contains(salesMsg, want) {
			t.Fatalf("sales message missing %q:\n%s", want, salesMsg)
		}
	}
}

func TestSendOverdueReminderLogsBothRecipients(t *testing.T) {
	db := newTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(bridgeResponse{Status: "Message sent successfully"})
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	bill := overdueBill()

	logs := notifier.SendOverdueReminder(db, bill)
	if len(logs) != 2 {
		t.Fatalf("expected client and sales reminders, got %d", len(logs))
	}
	if logs[0].Recipient != "client" || logs[1].Recipient != "sales" {
		t.Fatalf("unexpected recipients: %s, %s", logs[0].Recipient, logs[1].Recipient)
	}
	for _, entry := range logs {
		if entry.Status != "sent" {
			t.Fatalf("expected sent status, got %s (%s)", entry.Status, entry.ErrorMessage)
		}
	}

	var stored int64
	db.Model(&models.ReminderLog{}).Where("bill_id = ?", bill.ID).Count(&stored)
	if stored != 2 {
		t.Fatalf("expected 2 logged reminders, got %d", stored)
	}
}

func TestSendOverdueReminderFailureIsNonFatal(t *testing.T) {
	db := newTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(bridgeResponse{Error: "client disconnected"})
	}))
	defer server.Close()

	notifier := testNotifier(server.URL)
	bill := overdueBill()
	bill.SalesPerson = nil
	bill.SalesPersonID = nil

	logs := notifier.SendOverdueReminder(db, bill)
	if len(logs) != 1 {
		t.Fatalf("expected a single reminder attempt, got %d", len(logs))
	}
	if logs[0].Status != "failed" {
		t.Fatalf("expected failed status, got %s", logs[0].Status)
	}
	if logs[0].ErrorMessage == "" {
		t.Fatal("expected the bridge error to be recorded")
	}
}
