// controllers/statement.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"billtrack-backend/config"
	"billtrack-backend/models"
	"billtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

type ClientStatement struct {
	Client       models.Client `json:"client"`
	Bills        []BillSummary `json:"bills"`
	TotalBilled  float64       `json:"totalBilled"`
	TotalPaid    float64       `json:"totalPaid"`
	TotalPending float64       `json:"totalPending"`
	FromDate     string        `json:"fromDate,omitempty"`
	ToDate       string        `json:"toDate,omitempty"`
}

func buildClientStatement(clientID uuid.UUID, fromDate, toDate string) (*ClientStatement, error) {
	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return nil, err
	}

	query := config.DB.Preload("Payments").Where("client_id = ?", client.ID)

	if fromDate != "" {
		from, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return nil, errInvalidDateRange
		}
		query = query.Where("bill_date >= ?", from)
	}
	if toDate != "" {
		to, err := time.Parse("2006-01-02", toDate)
		if err != nil {
			return nil, errInvalidDateRange
		}
		// Inclusive upper bound on the day
		query = query.Where("bill_date < ?", to.AddDate(0, 0, 1))
	}

	var bills []models.Bill
	if err := query.Order("bill_date").Find(&bills).Error; err != nil {
		return nil, err
	}

	var totalBilled, totalPaid float64
	for _, bill := range bills {
		totalBilled += bill.TotalAmount
		totalPaid += bill.PaidAmount
	}

	return &ClientStatement{
		Client:       client,
		Bills:        billSummaries(bills),
		TotalBilled:  totalBilled,
		TotalPaid:    totalPaid,
		TotalPending: totalBilled - totalPaid,
		FromDate:     fromDate,
		ToDate:       toDate,
	}, nil
}

// GetClientStatement returns a client's bills in a date range with running totals
func GetClientStatement(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	statement, err := buildClientStatement(clientUUID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondStatementError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

// GetClientStatementPDF renders the statement as a downloadable PDF
func GetClientStatementPDF(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	statement, err := buildClientStatement(clientUUID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondStatementError(c, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Statement for "+statement.Client.Name)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Client: "+statement.Client.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Phone: "+statement.Client.Phone)
	pdf.Ln(6)
	if statement.FromDate != "" || statement.ToDate != "" {
		from := statement.FromDate
		if from == "" {
			from = "Start"
		}
		to := statement.ToDate
		if to == "" {
			to = "End"
		}
		pdf.Cell(0, 6, "Period: "+from+" to "+to)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(76, 175, 80)
	pdf.SetTextColor(255, 255, 255)
	widths := []float64{38, 32, 38, 38, 38}
	headers := []string{"Bill No", "Date", "Amount", "Paid", "Pending"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, s := range statement.Bills {
		cells := []string{
			s.Bill.BillNumber,
			s.Bill.BillDate.Format("02-01-2006"),
			fmt.Sprintf("%.2f", s.Bill.TotalAmount),
			fmt.Sprintf("%.2f", s.Bill.PaidAmount),
			fmt.Sprintf("%.2f", s.PendingAmount),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	totals := []string{
		"TOTAL",
		"",
		fmt.Sprintf("%.2f", statement.TotalBilled),
		fmt.Sprintf("%.2f", statement.TotalPaid),
		fmt.Sprintf("%.2f", statement.TotalPending),
	}
	for i, cell := range totals {
		pdf.CellFormat(widths[i], 8, cell, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", statement.Client.Name+"_statement.pdf"))
	c.Header("Content-Type", "application/pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render PDF")
	}
}

var errInvalidDateRange = errors.New("dates must be in YYYY-MM-DD format")

func respondStatementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
	case errors.Is(err, errInvalidDateRange):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
