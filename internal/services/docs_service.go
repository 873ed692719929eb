package services

import (
	"bytes"
	"fmt"
	"strings"

	"bikie/internal/logging"
	"bikie/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable copies of booking confirmations.
type DocsService struct {
	RequestID string
}

// GenerateReceipt returns the confirmation as a one-page PDF and its file name.
func (s DocsService) GenerateReceipt(c Confirmation) ([]byte, string, error) {
	logging.LogEvent(s.RequestID, "docs", "generate_receipt", "reference="+c.Reference)
	return buildReceiptPDF(c)
}

func buildReceiptPDF(c Confirmation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Request "+c.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BIKIE BOOKING REQUEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference : "+safe(c.Reference, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Submitted : "+c.SubmittedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range []string{
		fmt.Sprintf("Name      : %s", safe(c.Form.FullName(), "-")),
		fmt.Sprintf("Email     : %s", safe(c.Form.Email, "-")),
		fmt.Sprintf("Phone     : %s", safe(c.Form.Phone, "-")),
	} {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range []string{
		fmt.Sprintf("Vehicle   : %s (%s)", safe(c.Vehicle.Name, "-"), string(c.Vehicle.Type)),
		fmt.Sprintf("Pickup    : %s", c.PickupAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Return    : %s", c.ReturnAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Duration  : %s", c.Selection.Label()),
		fmt.Sprintf("Rate      : %s per hour", utils.FormatRupees(c.Quote.HourlyRate)),
	} {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	if c.Quote.Savings > 0 {
		pdf.Cell(0, 7, "Savings   : "+utils.FormatRupees(c.Quote.Savings))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupees(c.Quote.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This is a booking request, not a reservation. Our team will contact you to confirm availability. Payment is collected at pickup.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOOKING_%s_%s.pdf", utils.SafeFilenamePart(c.Reference), utils.SafeFilenamePart(c.Vehicle.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
