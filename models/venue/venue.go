package venue

import (
	"fmt"

	"arena-pro/models"
	"arena-pro/models/slot"
)

// Venue is a bookable sports facility as stored by the admin panel.
type Venue struct {
	VenueID      string  `json:"id"`
	VenueName    string  `json:"name"`
	VenueAddress string  `json:"address,omitempty"`
	VenueLat     float64 `json:"lat"`
	VenueLon     float64 `json:"lng"`
	SportType    string  `json:"sportType,omitempty"`

	PricePerHour *models.FlexNumber `json:"pricePerHour,omitempty"`
	Pricing      *Pricing           `json:"pricing,omitempty"`

	DiscountPercentage *models.FlexNumber `json:"discountPercentage,omitempty"`
	Discount           *models.FlexNumber `json:"discount,omitempty"`

	OperatingHours *OperatingHours `json:"operatingHours,omitempty"`

	// DateSpecificSlots maps "YYYY-MM-DD" to the admin-curated slots of that day.
	DateSpecificSlots map[string][]slot.Slot `json:"dateSpecificSlots,omitempty"`

	OwnerPushToken string `json:"ownerPushToken,omitempty"`
}

// Pricing holds the nested price block some venue documents use.
type Pricing struct {
	BasePrice *models.FlexNumber `json:"basePrice,omitempty"`
}

// OperatingHours bounds the bookable hours of a day, "HH:MM".
type OperatingHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(id=%s, name=%s, address=%s, lat=%f, lon=%f)",
		v.VenueID, v.VenueName, v.VenueAddress, v.VenueLat, v.VenueLon)
}
