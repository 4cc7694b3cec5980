package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"arena-pro/dao/redis"
	"arena-pro/metrics"
	"arena-pro/models/slot"
	"arena-pro/models/venue"
	"arena-pro/pricing"
	"arena-pro/slots"
)

// VenueWithQuote is a venue as listed to players, with its price triple.
type VenueWithQuote struct {
	venue.Venue
	Quote pricing.PriceQuote `json:"quote"`
}

// PricedSlot is a resolved slot plus the price after the venue discount.
type PricedSlot struct {
	slot.Slot
	DiscountedPrice int `json:"discountedPrice"`
}

// DateAvailability is the bookable view of one venue's date. Configured is
// false when no admin curated slots exist for the date.
type DateAvailability struct {
	VenueID            string       `json:"venueId"`
	Date               string       `json:"date"`
	Configured         bool         `json:"configured"`
	DiscountPercentage float64      `json:"discountPercentage"`
	Slots              []PricedSlot `json:"slots"`
}

type VenueService struct {
	venueDao    *redis.RedisVenueDAO
	bookingDao  *redis.RedisBookingDAO
	broadcaster AvailabilityBroadcaster
}

// NewVenueService constructs a new VenueService with Redis dependency injection.
func NewVenueService(
	venueDao *redis.RedisVenueDAO,
	bookingDao *redis.RedisBookingDAO,
	broadcaster AvailabilityBroadcaster) *VenueService {

	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &VenueService{
		venueDao:    venueDao,
		bookingDao:  bookingDao,
		broadcaster: broadcaster,
	}
}

func (vs *VenueService) GetVenuesNearby(ctx context.Context, lat, lon, radius float64) ([]VenueWithQuote, error) {
	venues, err := vs.venueDao.GetNearbyVenues(ctx, lat, lon, radius)
	if err != nil {
		return nil, err
	}
	out := make([]VenueWithQuote, 0, len(venues))
	for i := range venues {
		out = append(out, VenueWithQuote{Venue: venues[i], Quote: pricing.Quote(&venues[i])})
	}
	return out, nil
}

func (vs *VenueService) GetVenue(ctx context.Context, venueID string) (*venue.Venue, error) {
	return vs.venueDao.GetVenue(ctx, venueID)
}

func (vs *VenueService) GetPriceQuote(ctx context.Context, venueID string) (pricing.PriceQuote, error) {
	v, err := vs.venueDao.GetVenue(ctx, venueID)
	if err != nil {
		return pricing.PriceQuote{}, err
	}
	return pricing.Quote(v), nil
}

// GetAvailableSlots resolves a date's slots against the bookings already made.
func (vs *VenueService) GetAvailableSlots(ctx context.Context, venueID, date string) (*DateAvailability, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	v, err := vs.venueDao.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	booked, err := vs.bookingDao.GetBookedStartTimes(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	resolved := slots.ResolveAvailableSlots(v, date, booked)
	discount := pricing.GetDiscountValue(v)

	priced := make([]PricedSlot, 0, len(resolved))
	for _, s := range resolved {
		priced = append(priced, PricedSlot{
			Slot:            s,
			DiscountedPrice: int(pricing.CalculateDiscountedPrice(float64(s.Price), discount)),
		})
	}

	configured := slots.IsConfigured(v, date)
	metrics.RecordSlotsResolved(len(priced), configured)
	if !configured {
		log.Printf("[VenueService] No slots configured for venue %s on %s", venueID, date)
	}

	return &DateAvailability{
		VenueID:            venueID,
		Date:               date,
		Configured:         configured,
		DiscountPercentage: discount,
		Slots:              priced,
	}, nil
}

// GenerateDateSlots stores the default dynamic-priced day for a date,
// replacing whatever was curated for it.
func (vs *VenueService) GenerateDateSlots(ctx context.Context, venueID, date string) ([]slot.Slot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	v, err := vs.venueDao.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	generated, err := slots.GenerateForVenue(v, slots.DynamicScheme())
	if err != nil {
		return nil, fmt.Errorf("failed to generate slots for venue %s: %w", venueID, err)
	}
	for i := range generated {
		generated[i].Selected = slot.Bool(true)
	}
	if err := vs.venueDao.SetDateSpecificSlots(ctx, venueID, date, generated); err != nil {
		return nil, err
	}
	log.Printf("[VenueService] Generated %d slots for venue %s on %s", len(generated), venueID, date)
	vs.broadcaster.BroadcastAvailability(venueID, date)
	return generated, nil
}

// SetDateSlots stores admin-curated slots for a date. Times are rewritten as
// "HH:00", a missing end time becomes start + 1h and missing ids are derived
// from the start time.
func (vs *VenueService) SetDateSlots(ctx context.Context, venueID, date string, curated []slot.Slot) ([]slot.Slot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(curated))
	out := make([]slot.Slot, 0, len(curated))
	for _, raw := range curated {
		s, err := canonicalHourSlot(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s.StartTime]; dup {
			return nil, fmt.Errorf("%w: duplicate start time %s", ErrInvalidRequest, s.StartTime)
		}
		seen[s.StartTime] = struct{}{}
		if s.Price < 0 {
			return nil, fmt.Errorf("%w: negative price at %s", ErrInvalidRequest, s.StartTime)
		}
		if s.ID == "" {
			s.ID = slots.SlotID(s.StartTime)
		}
		s.Available = true
		out = append(out, s)
	}
	if err := vs.venueDao.SetDateSpecificSlots(ctx, venueID, date, out); err != nil {
		return nil, err
	}
	vs.broadcaster.BroadcastAvailability(venueID, date)
	return out, nil
}

// canonicalHourSlot enforces the one-hour shape of a stored slot.
func canonicalHourSlot(s slot.Slot) (slot.Slot, error) {
	s = s.Normalized()
	hour, err := slots.ParseHour(s.StartTime)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if hour < 0 || hour > 23 {
		return s, fmt.Errorf("%w: start hour %d out of range", ErrInvalidRequest, hour)
	}
	if strings.TrimSpace(s.EndTime) != "" {
		end, err := slots.ParseHour(s.EndTime)
		if err != nil {
			return s, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if end != hour+1 {
			return s, fmt.Errorf("%w: slot %s-%s is not one hour long", ErrInvalidRequest, s.StartTime, s.EndTime)
		}
	}
	s.StartTime = slots.FormatHour(hour)
	s.Time = s.StartTime
	s.EndTime = slots.FormatHour(hour + 1)
	return s, nil
}

// PreviewLegacySlots renders the fixed-price day used by older admin
// screens. Display only; nothing is stored.
func (vs *VenueService) PreviewLegacySlots(ctx context.Context, venueID string) ([]slot.Slot, error) {
	v, err := vs.venueDao.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return slots.GenerateForVenue(v, slots.LegacyFixedScheme())
}

func (vs *VenueService) UpsertVenue(ctx context.Context, v venue.Venue) error {
	if v.VenueID == "" {
		return fmt.Errorf("%w: venue id is required", ErrInvalidRequest)
	}
	if err := vs.venueDao.UpsertVenue(ctx, v); err != nil {
		return err
	}
	log.Printf("[VenueService] Upserted venue %s", v.ToString())
	return nil
}
