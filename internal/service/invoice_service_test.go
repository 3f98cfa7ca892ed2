package service

import (
	"testing"
	"time"

	"magnumdrive/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceFilename(t *testing.T) {
	name := InvoiceFilename("Arun Kumar", "a1b2c3d4-0000-1111-2222-333344445555")
	assert.Equal(t, "Invoice_Arun_Kumar_A1B2C3D4.pdf", name)

	// Deterministic: the same booking always downloads the same file.
	assert.Equal(t, name, InvoiceFilename(" Arun Kumar ", "a1b2c3d4-0000-1111-2222-333344445555"))
}

func TestRenderProducesPDF(t *testing.T) {
	svc := NewInvoiceService(nil)
	startKM := 12000
	endKM := 12450

	b := entities.BookingResponse{
		ID:            "a1b2c3d4-0000-1111-2222-333344445555",
		CarID:         "car-1",
		Status:        "Completed",
		CustomerName:  "Arun Kumar",
		CustomerPhone: "9876543210",
		StartAt:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		TripDays:      2,
		TotalAmount:   10000,
		DepositAmount: 5000,
		StartKM:       &startKM,
		EndKM:         &endKM,
	}
	car := entities.Car{ID: "car-1", Name: "Swift Dzire", RegistrationNumber: "TN72 AB 1234"}

	data, filename, err := svc.Render(b, car)
	require.NoError(t, err)
	assert.Equal(t, "Invoice_Arun_Kumar_A1B2C3D4.pdf", filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
