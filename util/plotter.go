package util

import (
	"fmt"
	"io"

	"arena-pro/models/slot"
	"arena-pro/pricing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderPriceChart renders a venue's price curve for a date as a standalone
// HTML page. Booked slots are drawn as gaps in the "Open" series.
func RenderPriceChart(w io.Writer, venueName, date string, slots []slot.Slot, discountPercentage float64) error {
	hours := make([]string, 0, len(slots))
	listPrices := make([]opts.LineData, 0, len(slots))
	discounted := make([]opts.LineData, 0, len(slots))
	open := make([]opts.LineData, 0, len(slots))

	for _, s := range slots {
		price := pricing.CalculateDiscountedPrice(float64(s.Price), discountPercentage)
		hours = append(hours, s.Start())
		listPrices = append(listPrices, opts.LineData{Value: s.Price, Name: s.PriceType})
		discounted = append(discounted, opts.LineData{Value: price, Name: s.PriceType})
		if s.Available {
			open = append(open, opts.LineData{Value: price})
		} else {
			open = append(open, opts.LineData{Value: "-"})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s %s", venueName, date),
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    venueName,
			Subtitle: fmt.Sprintf("Slot prices for %s", date),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Start"}),
	)

	line.SetXAxis(hours).
		AddSeries("List price", listPrices).
		AddSeries("Discounted", discounted).
		AddSeries("Open", open,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render price chart: %w", err)
	}
	return nil
}
