package report

import (
	"fmt"

	"arena-pro/models/slot"
	"arena-pro/models/venue"
	"arena-pro/pricing"

	"github.com/phpdave11/gofpdf"
)

// DailySlotReport renders one venue's day for the admin panel: each slot
// with its tier, list and discounted price and whether it is still open.
func DailySlotReport(v *venue.Venue, date string, slots []slot.Slot) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("no venue to render")
	}
	discount := pricing.GetDiscountValue(v)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %s", v.VenueName, date), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(pdf, v.VenueName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Slots for %s", date), "", 1, "L", false, 0, "")
	if discount > 0 {
		pdf.CellFormat(0, 6, fmt.Sprintf("Venue discount %g%%", discount), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(slots) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 8, "No slots configured for this date.", "", 1, "L", false, 0, "")
		return output(pdf)
	}

	widths := []float64{35, 45, 35, 35, 30}
	headers := []string{"Time", "Tier", "Price", "Discounted", "Status"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	open, revenue := 0, 0
	for _, s := range slots {
		discounted := int(pricing.CalculateDiscountedPrice(float64(s.Price), discount))
		state := "Booked"
		if s.Available {
			state = "Open"
			open++
		} else {
			revenue += discounted
		}
		tier := s.PriceType
		if tier == "" {
			tier = "-"
		}
		pdf.CellFormat(widths[0], 7, s.Start()+" - "+s.EndTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, tier, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, formatAmount(s.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, formatAmount(discounted), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, state, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d of %d slots open, %s booked", open, len(slots), formatAmount(revenue)), "", 1, "L", false, 0, "")

	return output(pdf)
}
