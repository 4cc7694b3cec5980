package util

import (
	"encoding/json"
	"fmt"
	"os"

	"arena-pro/models/booking"
	"arena-pro/models/venue"
)

// ReadVenuesFromJSON loads a list of venues from JSON on disk.
func ReadVenuesFromJSON(filePath string) ([]venue.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var venues []venue.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues: %w", err)
	}
	return venues, nil
}

// ReadVenueFromJSON loads a single Venue from JSON on disk.
func ReadVenueFromJSON(filePath string) (*venue.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var v venue.Venue
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Venue: %w", err)
	}
	return &v, nil
}

// ReadBookingFromJSON loads a single Booking from JSON on disk.
func ReadBookingFromJSON(filePath string) (*booking.Booking, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var b booking.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Booking: %w", err)
	}
	return &b, nil
}
