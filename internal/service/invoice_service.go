package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"magnumdrive/internal/entities"
	apperrors "magnumdrive/internal/errors"

	"github.com/go-pdf/fpdf"
)

// defaultInvoiceTerms is printed when no legal settings override them.
var defaultInvoiceTerms = []string{
	"1. Security Deposit (Rs. 5000) will be refunded within 12-24 hours after vehicle return, subject to vehicle condition.",
	"2. Maximum speed limit: 100 km/h. Overspeeding fines are the sole responsibility of the customer.",
	"3. Fuel Policy: vehicle must be returned with the same fuel level as pickup. Shortage will be deducted from deposit.",
	"4. The customer is fully liable for any accidents, damages, or traffic violations during the rental period.",
	"5. Late Return Penalty: Rs. 200 per hour. Delays exceeding 6 hours are charged as a full day rental.",
	"6. Smoking and drinking alcohol inside the vehicle is strictly prohibited.",
}

// InvoiceService renders booking invoices as downloadable PDFs. Company
// header and terms come from the settings store with fixed fallbacks.
type InvoiceService struct {
	Settings *SettingsService
}

func NewInvoiceService(settings *SettingsService) *InvoiceService {
	return &InvoiceService{Settings: settings}
}

func (s *InvoiceService) settingOr(key, fallback string) string {
	if s.Settings == nil {
		return fallback
	}
	if v := s.Settings.Value(key); v != "" {
		return v
	}
	return fallback
}

// Filename is deterministic over customer name and booking id so repeated
// downloads of the same invoice collide on purpose.
func InvoiceFilename(customerName, bookingID string) string {
	name := strings.ReplaceAll(strings.TrimSpace(customerName), " ", "_")
	return fmt.Sprintf("Invoice_%s_%s.pdf", name, shortID(bookingID))
}

// Render produces the invoice PDF for a booking and its car.
func (s *InvoiceService) Render(b entities.BookingResponse, car entities.Car) ([]byte, string, error) {
	companyName := s.settingOr("company_name", "MAGNUM SELF DRIVE CARS")
	companyAddr := s.settingOr("company_address", "L133, Josy Cottage, Palayamkottai, Tirunelveli - 627007")
	companyEmail := s.settingOr("company_email", "carsmagnum583@gmail.com")
	companyPhone := s.settingOr("whatsapp_number", defaultAdminWhatsApp)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, 0, 210, 42, "F")
	pdf.SetTextColor(250, 204, 21)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(14, 18, strings.ToUpper(companyName))
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(14, 26, "Phone: +"+companyPhone)
	pdf.Text(14, 31, "Email: "+companyEmail)
	pdf.Text(14, 36, companyAddr)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(158, 22, "INVOICE")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(158, 30, "No: INV-"+shortID(b.ID))
	pdf.Text(158, 35, "Date: "+time.Now().Format("02 Jan 2006"))

	pdf.SetTextColor(0, 0, 0)

	// Customer and vehicle blocks
	pdf.SetY(52)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 7, "BILLED TO", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "VEHICLE DETAILS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	left := []string{
		"Name: " + b.CustomerName,
		"Phone: " + b.CustomerPhone,
		"Email: " + b.CustomerEmail,
		"Address: " + orNA(b.Address),
	}
	right := []string{
		"Car: " + car.Name,
		"Reg No: " + orNA(car.RegistrationNumber),
		"Fuel: " + car.Fuel + " | " + car.Gear,
		"Start KM: " + kmOrNA(b.StartKM),
	}
	for i := range left {
		pdf.CellFormat(95, 6, left[i], "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, right[i], "", 1, "L", false, 0, "")
	}

	// Trip table
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(241, 245, 249)
	headers := []string{"Trip Start", "Trip End", "Duration", "Destination"}
	widths := []float64{50, 50, 30, 60}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	tripCells := []string{
		b.StartAt.Format("02 Jan 2006, 03:04 PM"),
		b.EndAt.Format("02 Jan 2006, 03:04 PM"),
		fmt.Sprintf("%d Days", b.TripDays),
		b.TripLocation,
	}
	for i, c := range tripCells {
		pdf.CellFormat(widths[i], 8, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	// Charges table
	rental := b.TotalAmount - b.DepositAmount
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount (INR)", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(140, 8, fmt.Sprintf("Vehicle Rental Charges (%d Days)", b.TripDays), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("Rs. %d", rental), "1", 1, "R", false, 0, "")
	pdf.CellFormat(140, 8, "Security Deposit (Refundable)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("Rs. %d", b.DepositAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 9, "TOTAL AMOUNT", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, fmt.Sprintf("Rs. %d", b.TotalAmount), "1", 1, "R", false, 0, "")

	// Terms
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "TERMS & CONDITIONS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	terms := defaultInvoiceTerms
	if custom := s.settingOr("invoice_terms", ""); custom != "" {
		terms = strings.Split(custom, "\n")
	}
	for _, term := range terms {
		pdf.MultiCell(0, 5, term, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", apperrors.ErrInternal("could not render invoice: " + err.Error())
	}
	return buf.Bytes(), InvoiceFilename(b.CustomerName, b.ID), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func kmOrNA(km *int) string {
	if km == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d km", *km)
}
