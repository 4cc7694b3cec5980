// Package pricing resolves the price a venue is displayed and booked at.
package pricing

import (
	"log"
	"math"

	"arena-pro/models"
	"arena-pro/models/venue"

	"github.com/shopspring/decimal"
)

const maxDiscountPercentage = 100

// PriceQuote is the price triple rendered next to a venue.
type PriceQuote struct {
	OriginalPrice      float64 `json:"originalPrice"`
	DiscountedPrice    float64 `json:"discountedPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	HasDiscount        bool    `json:"hasDiscount"`
}

// firstPresent returns the first field that exists and is not null.
func firstPresent(fields ...*models.FlexNumber) *models.FlexNumber {
	for _, f := range fields {
		if !f.IsNull() {
			return f
		}
	}
	return nil
}

// GetDiscountValue returns discountPercentage, falling back to discount.
// The result is never negative; anything that is not a number counts as 0.
func GetDiscountValue(v *venue.Venue) float64 {
	if v == nil {
		return 0
	}
	field := firstPresent(v.DiscountPercentage, v.Discount)
	if field == nil {
		return 0
	}
	d := field.Float()
	if math.IsNaN(d) {
		log.Printf("[Pricing] Non-numeric discount on venue %s, treating as 0", v.VenueID)
		return 0
	}
	if d < 0 {
		return 0
	}
	return d
}

// HasDiscount reports whether the venue carries a positive discount.
func HasDiscount(v *venue.Venue) bool {
	return GetDiscountValue(v) > 0
}

// GetOriginalPrice returns pricePerHour, falling back to pricing.basePrice.
func GetOriginalPrice(v *venue.Venue) float64 {
	if v == nil {
		log.Println("[Pricing] No venue given, original price is 0")
		return 0
	}

	var base *models.FlexNumber
	if v.Pricing != nil {
		base = v.Pricing.BasePrice
	}

	price := 0.0
	if field := firstPresent(v.PricePerHour, base); field != nil {
		if p := field.Float(); !math.IsNaN(p) {
			price = p
		}
	}
	if price == 0 {
		log.Printf("[Pricing] Venue %s has no usable price, original price is 0", v.VenueID)
	}
	return price
}

// CalculateDiscountedPrice applies a percentage discount, capped at 100, and
// rounds half up to a whole amount.
func CalculateDiscountedPrice(originalPrice, discountPercentage float64) float64 {
	if originalPrice == 0 || math.IsNaN(originalPrice) || discountPercentage <= 0 || math.IsNaN(discountPercentage) {
		return originalPrice
	}

	capped := discountPercentage
	if capped > maxDiscountPercentage {
		log.Printf("[Pricing] Discount %.2f%% exceeds %d%%, capping", discountPercentage, maxDiscountPercentage)
		capped = maxDiscountPercentage
	}

	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(capped).Div(decimal.NewFromInt(100)))
	return decimal.NewFromFloat(originalPrice).Mul(factor).Round(0).InexactFloat64()
}

// Quote resolves the full price triple for a venue.
func Quote(v *venue.Venue) PriceQuote {
	original := GetOriginalPrice(v)
	discount := GetDiscountValue(v)
	return PriceQuote{
		OriginalPrice:      original,
		DiscountedPrice:    CalculateDiscountedPrice(original, discount),
		DiscountPercentage: discount,
		HasDiscount:        discount > 0,
	}
}
