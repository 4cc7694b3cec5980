// Package slots builds the bookable hours of a venue's day and filters them
// down to what a player may still book.
package slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"arena-pro/models/slot"
	"arena-pro/models/venue"
	"arena-pro/pricing"

	"github.com/google/uuid"
)

var (
	ErrMalformedTime    = errors.New("malformed HH:MM time")
	ErrNoOperatingHours = errors.New("venue has no operating hours")
	slotNamespace       = uuid.MustParse("6f1c2a4e-8d0b-4c55-9a53-5a1f1d2e7b10")
)

// ParseHour returns the hour component of an "HH:MM" string.
func ParseHour(hhmm string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(hhmm), ":")
	hour, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, hhmm)
	}
	return hour, nil
}

// FormatHour renders an hour as "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SlotID is stable for a given start time so regenerating a day yields the
// same ids.
func SlotID(startTime string) string {
	return uuid.NewSHA1(slotNamespace, []byte(startTime)).String()
}

// GenerateTimeSlots produces one slot per hour in [open, close).
func GenerateTimeSlots(basePrice float64, openTime, closeTime string, scheme Scheme) ([]slot.Slot, error) {
	openHour, err := ParseHour(openTime)
	if err != nil {
		return nil, err
	}
	closeHour, err := ParseHour(closeTime)
	if err != nil {
		return nil, err
	}

	out := make([]slot.Slot, 0, max(closeHour-openHour, 0))
	for h := openHour; h < closeHour; h++ {
		start := FormatHour(h)
		price, label := scheme.PriceAt(h, basePrice)
		out = append(out, slot.Slot{
			ID:        SlotID(start),
			Time:      start,
			StartTime: start,
			EndTime:   FormatHour(h + 1),
			Price:     price,
			PriceType: label,
			Available: true,
		})
	}
	return out, nil
}

// GenerateForVenue is the admin default generation: the venue's operating
// hours priced from its original hourly price.
func GenerateForVenue(v *venue.Venue, scheme Scheme) ([]slot.Slot, error) {
	if v == nil || v.OperatingHours == nil {
		return nil, ErrNoOperatingHours
	}
	return GenerateTimeSlots(pricing.GetOriginalPrice(v), v.OperatingHours.Open, v.OperatingHours.Close, scheme)
}

// IsConfigured reports whether an admin curated slots for the date.
func IsConfigured(v *venue.Venue, date string) bool {
	if v == nil {
		return false
	}
	_, ok := v.DateSpecificSlots[date]
	return ok
}

// ResolveAvailableSlots returns the admin-curated slots of a date with their
// availability against already booked start times. A date without curated
// slots has no availability; there is no fallback to generated slots.
func ResolveAvailableSlots(v *venue.Venue, date string, bookedStartTimes []string) []slot.Slot {
	out := []slot.Slot{}
	if !IsConfigured(v, date) {
		return out
	}

	booked := make(map[string]struct{}, len(bookedStartTimes))
	for _, t := range bookedStartTimes {
		booked[t] = struct{}{}
	}

	for _, s := range v.DateSpecificSlots[date] {
		if !s.IsSelected() {
			continue
		}
		s = s.Normalized()
		_, taken := booked[s.StartTime]
		s.Available = !taken
		out = append(out, s)
	}
	return out
}
