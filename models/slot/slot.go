package slot

import "fmt"

// Price tier labels shown next to a slot.
const (
	PriceTypePrimeTime  = "Prime Time"
	PriceTypeHappyHours = "Happy Hours"
	PriceTypeRegular    = "Regular"
)

// Slot is a one hour bookable window. Date-specific slots curated by admins are
// stored with the venue; generated slots only live for the length of a request.
type Slot struct {
	ID        string `json:"id"`
	Time      string `json:"time,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime"`
	Price     int    `json:"price"`
	PriceType string `json:"priceType,omitempty"`

	// Selected is only meaningful on admin-curated entries. nil means selected.
	Selected  *bool `json:"selected,omitempty"`
	Available bool  `json:"available"`
}

// IsSelected reports whether an admin left the slot open for booking.
func (s Slot) IsSelected() bool {
	return s.Selected == nil || *s.Selected
}

// Start returns the slot start, accepting either of the two field names
// older documents were written with.
func (s Slot) Start() string {
	if s.StartTime != "" {
		return s.StartTime
	}
	return s.Time
}

// Normalized returns a copy with time and startTime holding the same value.
func (s Slot) Normalized() Slot {
	start := s.Start()
	s.Time = start
	s.StartTime = start
	return s
}

func (s *Slot) ToString() string {
	return fmt.Sprintf("Slot(id=%s, %s-%s, price=%d, available=%t)",
		s.ID, s.Start(), s.EndTime, s.Price, s.Available)
}

// Bool is a small helper for building Selected values.
func Bool(b bool) *bool {
	return &b
}
