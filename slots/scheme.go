package slots

import (
	"arena-pro/models/slot"

	"github.com/shopspring/decimal"
)

// Tier prices every hour in [FromHour, ToHour], both ends inclusive.
// A non-zero FixedPrice wins over Multiplier.
type Tier struct {
	Label      string
	FromHour   int
	ToHour     int
	Multiplier float64
	FixedPrice int
}

func (t Tier) covers(hour int) bool {
	return hour >= t.FromHour && hour <= t.ToHour
}

// Scheme is an ordered list of tiers; the first tier covering an hour wins,
// hours no tier covers get the default.
type Scheme struct {
	Name    string
	Tiers   []Tier
	Default Tier
}

// DynamicScheme is the authoritative pricing used when admins generate a
// day's slots: evenings cost more, early mornings less.
func DynamicScheme() Scheme {
	return Scheme{
		Name: "dynamic",
		Tiers: []Tier{
			{Label: slot.PriceTypePrimeTime, FromHour: 17, ToHour: 21, Multiplier: 1.25},
			{Label: slot.PriceTypeHappyHours, FromHour: 6, ToHour: 8, Multiplier: 0.9},
		},
		Default: Tier{Label: slot.PriceTypeRegular, Multiplier: 1},
	}
}

// LegacyFixedScheme is the old slot-matrix display pricing. It ignores the
// venue price and must not be used to price bookings.
func LegacyFixedScheme() Scheme {
	return Scheme{
		Name: "legacy-fixed",
		Tiers: []Tier{
			{Label: slot.PriceTypePrimeTime, FromHour: 20, ToHour: 23, FixedPrice: 3500},
			{Label: slot.PriceTypeHappyHours, FromHour: 16, ToHour: 19, FixedPrice: 2000},
		},
		Default: Tier{Label: slot.PriceTypeRegular, FixedPrice: 2500},
	}
}

// PriceAt returns the price and tier label of the slot starting at hour.
func (s Scheme) PriceAt(hour int, basePrice float64) (int, string) {
	tier := s.Default
	for _, t := range s.Tiers {
		if t.covers(hour) {
			tier = t
			break
		}
	}

	if tier.FixedPrice != 0 {
		return tier.FixedPrice, tier.Label
	}
	multiplier := tier.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	price := decimal.NewFromFloat(basePrice).Mul(decimal.NewFromFloat(multiplier)).Round(0)
	return int(price.IntPart()), tier.Label
}
