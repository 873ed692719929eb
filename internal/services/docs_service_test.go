package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"bikie/internal/domain"
	"bikie/internal/domain/models"
)

func TestDocsServiceGenerateReceipt(t *testing.T) {
	pickup := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	conf := Confirmation{
		Reference: "BK-1A2B3C4D5E",
		Form: BookingForm{
			FirstName: "Asha",
			LastName:  "Rao",
			Email:     "asha@example.com",
			Phone:     "98450 12345",
		},
		Vehicle:     models.Vehicle{ID: "bike-2", Name: "Royal Enfield Meteor 350", Type: models.VehicleBike, HourlyRate: 100},
		Selection:   domain.SlotSelection(3, 250),
		Quote:       domain.Quote{Kind: domain.SelectionSlot, Hours: 3, HourlyRate: 100, Total: 250, Savings: 50},
		PickupAt:    pickup,
		ReturnAt:    pickup.Add(3 * time.Hour),
		SubmittedAt: pickup.Add(-48 * time.Hour),
	}

	pdf, filename, err := DocsService{RequestID: "req-1"}.GenerateReceipt(conf)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "BOOKING_BK-1A2B3C4D5E_Royal_Enfield") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}
