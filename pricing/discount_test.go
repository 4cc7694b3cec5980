package pricing

import (
	"encoding/json"
	"testing"

	"arena-pro/models"
	"arena-pro/models/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueFromJSON(t *testing.T, doc string) *venue.Venue {
	t.Helper()
	var v venue.Venue
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return &v
}

func TestGetDiscountValue(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{name: "discountPercentage wins", doc: `{"discountPercentage": 15, "discount": 40}`, want: 15},
		{name: "falls back to discount", doc: `{"discount": 40}`, want: 40},
		{name: "null discountPercentage falls back", doc: `{"discountPercentage": null, "discount": 25}`, want: 25},
		{name: "numeric string", doc: `{"discountPercentage": "12"}`, want: 12},
		{name: "non-numeric string", doc: `{"discountPercentage": "lots", "discount": 30}`, want: 0},
		{name: "negative clamped", doc: `{"discount": -10}`, want: 0},
		{name: "zero", doc: `{"discountPercentage": 0, "discount": 30}`, want: 0},
		{name: "absent", doc: `{}`, want: 0},
		{name: "over a hundred kept", doc: `{"discount": 150}`, want: 150},
		// booleans are not numbers here, so true does not read as 1%
		{name: "boolean discountPercentage", doc: `{"discountPercentage": true, "discount": 30}`, want: 0},
		{name: "boolean discount", doc: `{"discount": true}`, want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := venueFromJSON(t, test.doc)
			got := GetDiscountValue(v)
			assert.Equal(t, test.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Equal(t, got > 0, HasDiscount(v))
		})
	}
}

func TestDiscountResolver_NilVenue(t *testing.T) {
	assert.Equal(t, 0.0, GetDiscountValue(nil))
	assert.False(t, HasDiscount(nil))
	assert.Equal(t, 0.0, GetOriginalPrice(nil))
}

func TestGetOriginalPrice(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{name: "pricePerHour wins", doc: `{"pricePerHour": 1200, "pricing": {"basePrice": 900}}`, want: 1200},
		{name: "falls back to basePrice", doc: `{"pricing": {"basePrice": 900}}`, want: 900},
		{name: "null pricePerHour falls back", doc: `{"pricePerHour": null, "pricing": {"basePrice": 900}}`, want: 900},
		{name: "string price", doc: `{"pricePerHour": "1500"}`, want: 1500},
		{name: "no price", doc: `{"name": "Turf"}`, want: 0},
		{name: "pricing block without base", doc: `{"pricing": {}}`, want: 0},
		{name: "boolean price", doc: `{"pricePerHour": true}`, want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, GetOriginalPrice(venueFromJSON(t, test.doc)))
		})
	}
}

func TestCalculateDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		discount float64
		want     float64
	}{
		{name: "fifteen percent", original: 1000, discount: 15, want: 850},
		{name: "no discount is identity", original: 1000, discount: 0, want: 1000},
		{name: "negative discount is identity", original: 1234, discount: -5, want: 1234},
		{name: "zero price", original: 0, discount: 50, want: 0},
		{name: "full discount", original: 1000, discount: 100, want: 0},
		{name: "over a hundred capped", original: 1000, discount: 150, want: 0},
		{name: "rounds half up", original: 1005, discount: 50, want: 503},
		{name: "rounds down below half", original: 999, discount: 10, want: 899},
		{name: "fractional discount", original: 2500, discount: 12.5, want: 2188},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, CalculateDiscountedPrice(test.original, test.discount))
		})
	}
}

func TestCalculateDiscountedPrice_CappingLaw(t *testing.T) {
	assert.Equal(t, CalculateDiscountedPrice(1000, 100), CalculateDiscountedPrice(1000, 150))
}

func TestQuote(t *testing.T) {
	v := &venue.Venue{
		VenueID:            "turf-1",
		PricePerHour:       models.NewFlexNumber(2000),
		DiscountPercentage: models.NewFlexNumber(10),
	}

	q := Quote(v)

	assert.Equal(t, PriceQuote{
		OriginalPrice:      2000,
		DiscountedPrice:    1800,
		DiscountPercentage: 10,
		HasDiscount:        true,
	}, q)
	assert.Equal(t, q, Quote(v))
}
