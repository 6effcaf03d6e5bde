// services/notifier.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotifierConfig holds the delivery settings for outbound reminders. The
// endpoint and country code are injected here instead of being hardcoded at
// the call sites.
type NotifierConfig struct {
	EndpointURL  string // whatsapp bridge, e.g. http://localhost:3000/send-message
	CountryCode  string // digits prepended to phone numbers, e.g. "91"
	BusinessName string // signature line on client messages
	Timeout      time.Duration

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

func NotifierConfigFromEnv() NotifierConfig {
	cfg := NotifierConfig{
		EndpointURL:      os.Getenv("WHATSAPP_API_URL"),
		CountryCode:      os.Getenv("WHATSAPP_COUNTRY_CODE"),
		BusinessName:     os.Getenv("BUSINESS_NAME"),
		Timeout:          5 * time.Second,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "91"
	}
	if cfg.BusinessName == "" {
		cfg.BusinessName = "Suhagan Creations"
	}
	return cfg
}

// Notifier delivers reminder messages. The primary channel is the whatsapp
// bridge; when no bridge is configured it falls back to SMS via Twilio.
// Delivery failures are reported but must never affect ledger state.
type Notifier struct {
	cfg    NotifierConfig
	client *http.Client
	twilio *twilio.RestClient
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		twilio: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
	}
}

type bridgeRequest struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

type bridgeResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Send delivers one message and reports the channel used
func (n *Notifier) Send(phone, message string) (string, error) {
	if n.cfg.EndpointURL != "" {
		return "whatsapp", n.sendWhatsApp(phone, message)
	}
	return "sms", n.sendSMS(phone, message)
}

func (n *Notifier) sendWhatsApp(phone, message string) error {
	payload := bridgeRequest{
		Number:  n.cfg.CountryCode + utils.NormalizePhone(phone),
		Message: message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(n.cfg.EndpointURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var decoded bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	if decoded.Error != "" {
		return fmt.Errorf("bridge error: %s", decoded.Error)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) sendSMS(phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+" + n.cfg.CountryCode + utils.NormalizePhone(phone))
	params.SetFrom(n.cfg.TwilioFromNumber)
	params.SetBody(message)

	resp, err := n.twilio.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", phone, *resp.Sid)
	}
	return nil
}

// ClientReminderMessage builds the client-facing payment reminder
func (n *Notifier) ClientReminderMessage(bill *models.Bill, today time.Time) string {
	return fmt.Sprintf(`Hi %s,

Your Bill No %s
Amount: Rs.%.2f
Overdue by %d days.

Kindly arrange payment.

- %s, Thank You.`,
		bill.Client.Name, bill.BillNumber, bill.DisplayPending(), bill.OverdueDays(today), n.cfg.BusinessName)
}

// SalesAlertMessage builds the follow-up alert for the bill's sales person
func (n *Notifier) SalesAlertMessage(bill *models.Bill, today time.Time) string {
	return fmt.Sprintf(`Alert!

Client: %s
Bill No: %s
Pending: Rs.%.2f
Overdue: %d days

Please follow up immediately.`,
		bill.Client.Name, bill.BillNumber, bill.DisplayPending(), bill.OverdueDays(today))
}

// SendOverdueReminder messages the client, and the sales person when the
// bill has one with a phone on file. Each attempt is recorded in the
// reminder log; failures are logged and never propagated as fatal.
func (n *Notifier) SendOverdueReminder(db *gorm.DB, bill *models.Bill) []models.ReminderLog {
	today := time.Now()
	logs := []models.ReminderLog{
		n.deliver(db, bill, "client", bill.Client.Phone, n.ClientReminderMessage(bill, today)),
	}

	if bill.SalesPerson != nil && bill.SalesPerson.Phone != "" {
		logs = append(logs,
			n.deliver(db, bill, "sales", bill.SalesPerson.Phone, n.SalesAlertMessage(bill, today)))
	}
	return logs
}

func (n *Notifier) deliver(db *gorm.DB, bill *models.Bill, recipient, phone, message string) models.ReminderLog {
	channel, err := n.Send(phone, message)

	entry := models.ReminderLog{
		BillID:    bill.ID,
		ClientID:  bill.ClientID,
		Recipient: recipient,
		Phone:     phone,
		Message:   message,
		Status:    "sent",
		Channel:   channel,
		SentAt:    time.Now(),
	}
	if err != nil {
		log.Printf("Failed to send %s reminder for bill %s: %v", recipient, bill.BillNumber, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for bill %s: %v", bill.BillNumber, err)
	}
	return entry
}
