package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"magnumdrive/internal/entities"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends booking status emails and SMS. Sends run in the
// background and failures are logged, never surfaced to the admin flow
// that triggered them.
type NotifyService struct {
	CompanyName string
}

func NewNotifyService(companyName string) *NotifyService {
	if companyName == "" {
		companyName = "Magnum Self Drive Cars"
	}
	return &NotifyService{CompanyName: companyName}
}

// NotifyStatusChange tells the customer their booking moved to a new
// lifecycle state.
func (s *NotifyService) NotifyStatusChange(b entities.BookingResponse) {
	loc, errLoc := time.LoadLocation("Asia/Kolkata")
	if errLoc != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}

	emailData := entities.BookingEmailData{
		CustomerName:   b.CustomerName,
		BookingID:      shortID(b.ID),
		Status:         b.Status,
		StartFormatted: b.StartAt.In(loc).Format("02 Jan 2006 15:04"),
		EndFormatted:   b.EndAt.In(loc).Format("02 Jan 2006 15:04"),
		TotalAmount:    b.TotalAmount,
		DepositAmount:  b.DepositAmount,
		CurrentYear:    time.Now().In(loc).Year(),
	}

	subject := fmt.Sprintf("Your %s booking is %s - Ref: %s", s.CompanyName, b.Status, emailData.BookingID)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking with %s is now %s.\n\n"+
			"Booking Details:\n"+
			"Reference: %s\n"+
			"Pickup: %s\n"+
			"Return: %s\n"+
			"Total Amount: Rs. %d (includes Rs. %d refundable deposit)\n\n"+
			"Thank you for choosing %s.",
		emailData.CustomerName, s.CompanyName, b.Status,
		emailData.BookingID, emailData.StartFormatted, emailData.EndFormatted,
		emailData.TotalAmount, emailData.DepositAmount, s.CompanyName,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	var htmlBody string
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Could not parse booking email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("Could not execute booking email template for booking %s: %v", b.ID, err)
		}
		htmlBody = buf.String()
	}

	go func() {
		if err := SendEmailWithSendGrid(b.CustomerEmail, b.CustomerName, subject, plainBody, htmlBody); err != nil {
			log.Printf("Email for booking %s failed: %v", b.ID, err)
		}
	}()

	sms := fmt.Sprintf("%s: Booking %s is %s.\nPickup: %s.\nDetails in your email.",
		s.CompanyName, emailData.BookingID, b.Status, emailData.StartFormatted)
	if err := SendSMS(b.CustomerPhone, sms); err != nil {
		log.Printf("SMS for booking %s failed: %v", b.ID, err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping email send")
		return fmt.Errorf("SENDGRID_API_KEY not set")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("SENDGRID_FROM_EMAIL not set, skipping email send")
		return fmt.Errorf("SENDGRID_FROM_EMAIL not set")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Magnum Self Drive Cars"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s failed: %w", toEmailAddress, err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s), status %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}

func SendSMS(toNumber string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("Twilio credentials not fully configured, skipping SMS send")
		return fmt.Errorf("twilio credentials not configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Destination number %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s failed: %w", toNumber, err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s, message SID %s", toNumber, *resp.Sid)
	}
	return nil
}
