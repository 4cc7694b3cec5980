// Package report renders the PDF documents handed to players and venue
// admins.
package report

import (
	"bytes"
	"fmt"
	"time"

	"arena-pro/models/booking"
	"arena-pro/squad"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const qrSizePx = 256

// QRPayload is what the venue staff scans at check-in.
func QRPayload(b *booking.Booking) string {
	return fmt.Sprintf("arenapro://booking/%s?venue=%s&date=%s&start=%s", b.ID, b.VenueID, b.Date, b.StartTime)
}

func qrPNG(text string) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR to PNG: %w", err)
	}
	return png, nil
}

// BookingReceipt renders the booking confirmation with a check-in QR code
// and the squad split.
func BookingReceipt(b *booking.Booking) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("no booking to render")
	}
	status, err := squad.ComputeSquadStatus(b)
	if err != nil {
		return nil, err
	}
	png, err := qrPNG(QRPayload(b))
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Booking "+b.ID, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Arena Pro booking", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(pdf, b.VenueName), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("qr", (pageW-50)/2, pdf.GetY(), 50, 50, false, imgOpts, 0, "")
	pdf.Ln(54)

	rows := [][2]string{
		{"Date", b.Date},
		{"Time", b.StartTime + " - " + b.EndTime},
		{"Organizer", b.UserName},
		{"Status", b.Status},
		{"Slot price", formatAmount(b.OriginalAmount)},
		{"Discount", fmt.Sprintf("%g%%", b.DiscountPercentage)},
		{"Total", formatAmount(b.TotalAmount)},
	}
	if b.PlayersNeeded > 0 {
		rows = append(rows,
			[2]string{"Squad", fmt.Sprintf("%d / %d players", status.CurrentPlayers, status.TotalPlayers)},
			[2]string{"Per player", formatAmount(status.PricePerPlayer)},
			[2]string{"Organizer share", formatAmount(status.OrganizerShare)},
		)
	}
	keyValueTable(pdf, rows)

	if len(b.PlayersJoined) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Joined players", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, p := range b.PlayersJoined {
			name := p.Name
			if name == "" {
				name = p.UID
			}
			pdf.CellFormat(70, 6, tr(pdf, name), "B", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, formatAmount(p.PaidAmount)+" "+p.PaymentStatus, "B", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, "Booking "+b.ID, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Issued "+time.UnixMilli(b.CreatedAt).UTC().Format(time.RFC1123), "", 1, "C", false, 0, "")

	return output(pdf)
}

func keyValueTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	for _, row := range rows {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(45, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, tr(pdf, row[1]), "B", 1, "R", false, 0, "")
	}
}

// tr maps UTF-8 text onto the core font code page.
func tr(pdf *gofpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

func formatAmount(amount int) string {
	return fmt.Sprintf("Rs. %d", amount)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
