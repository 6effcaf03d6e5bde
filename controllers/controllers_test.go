package controllers

import (
	"testing"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Bill{},
		&models.Payment{},
		&models.ReminderLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	config.DB = db
	return db
}

// testRouter registers the API handlers without the auth middleware
func testRouter() *gin.Engine {
	r := gin.New()

	r.POST("/api/clients", CreateClient)
	r.GET("/api/clients", GetClients)
	r.GET("/api/clients/summary", GetClientOutstandingSummary)
	r.GET("/api/clients/:id", GetClient)
	r.DELETE("/api/clients/:id", DeleteClient)
	r.GET("/api/clients/:id/bills", GetClientBills)
	r.GET("/api/clients/:id/statement", GetClientStatement)
	r.GET("/api/clients/:id/statement/pdf", GetClientStatementPDF)

	r.POST("/api/bills", CreateBill)
	r.GET("/api/bills", GetBills)
	r.GET("/api/bills/:id", GetBill)
	r.DELETE("/api/bills/:id", DeleteBill)
	r.POST("/api/bills/:id/payments", RecordPayment)
	r.GET("/api/bills/:id/payments", GetBillPayments)
	r.POST("/api/bills/:id/reconcile", ReconcileBill)

	r.GET("/api/dashboard", GetCollectionDashboard)

	return r
}

func createClient(t *testing.T, db *gorm.DB, name, phone string) models.Client {
	t.Helper()
	client := models.Client{Name: name, Phone: phone}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func createBill(t *testing.T, db *gorm.DB, client models.Client, number string, total, paid float64, due time.Time) models.Bill {
	t.Helper()
	bill := models.Bill{
		ClientID:    client.ID,
		BillNumber:  number,
		BillDate:    time.Now().AddDate(0, 0, -10),
		DueDate:     due,
		TotalAmount: total,
		PaidAmount:  paid,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("failed to create bill: %v", err)
	}
	return bill
}
