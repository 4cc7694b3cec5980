package services

import (
	"errors"
	"fmt"
	"time"
)

const DATE_LAYOUT = "2006-01-02"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrNotOrganizer    = errors.New("only the organizer may do this")
)

// AvailabilityBroadcaster is told whenever the availability of a venue's
// date changes.
type AvailabilityBroadcaster interface {
	BroadcastAvailability(venueID, date string)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastAvailability(string, string) {}

func validateDate(date string) error {
	if _, err := time.Parse(DATE_LAYOUT, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
