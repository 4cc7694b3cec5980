package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"arena-pro/db"
	"arena-pro/models/slot"
	"arena-pro/models/venue"
)

const VENUES_GEO_KEY_V1 = "venues_geo_v1"
const VENUE_KEY_FORMAT_V1 = "venue_v1:%s"

var ErrVenueNotFound = errors.New("venue not found")

// RedisVenueDAO handles venue operations using Redis.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

func venueKey(venueID string) string {
	return fmt.Sprintf(VENUE_KEY_FORMAT_V1, venueID)
}

// UpsertVenue stores the venue JSON and indexes its location.
func (dao *RedisVenueDAO) UpsertVenue(ctx context.Context, v venue.Venue) error {
	if v.VenueID == "" {
		return fmt.Errorf("[RedisVenueDAO] venue id is required")
	}
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, venueKey(v.VenueID), v.VenueLat, v.VenueLon, v)
}

// GetVenue loads a single venue by id.
func (dao *RedisVenueDAO) GetVenue(ctx context.Context, venueID string) (*venue.Venue, error) {
	str, err := dao.client.Get(ctx, venueKey(venueID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVenueNotFound, venueID)
		}
		return nil, fmt.Errorf("failed to get venue from redis: %w", err)
	}
	var v venue.Venue
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &v, nil
}

// GetNearbyVenues retrieves venues within radius km, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(ctx context.Context, lat, lon, radius float64) ([]venue.Venue, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(ctx, VENUES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]venue.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}

// ListAllVenueIDs returns all stored venue ids.
func (dao *RedisVenueDAO) ListAllVenueIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, venueKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list venue keys: %w", err)
	}
	prefix := venueKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// SetDateSpecificSlots replaces the curated slots of one date.
func (dao *RedisVenueDAO) SetDateSpecificSlots(ctx context.Context, venueID, date string, slots []slot.Slot) error {
	v, err := dao.GetVenue(ctx, venueID)
	if err != nil {
		return err
	}
	if v.DateSpecificSlots == nil {
		v.DateSpecificSlots = make(map[string][]slot.Slot)
	}
	v.DateSpecificSlots[date] = slots
	if err := dao.UpsertVenue(ctx, *v); err != nil {
		return fmt.Errorf("failed to store date specific slots for %s on %s: %w", venueID, date, err)
	}
	log.Printf("[RedisVenueDAO] Stored %d slots for venue %s on %s", len(slots), venueID, date)
	return nil
}

// DeleteDateSpecificSlots removes the curated slots of the given dates.
// It returns how many dates were actually removed.
func (dao *RedisVenueDAO) DeleteDateSpecificSlots(ctx context.Context, venueID string, dates ...string) (int, error) {
	v, err := dao.GetVenue(ctx, venueID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, d := range dates {
		if _, ok := v.DateSpecificSlots[d]; ok {
			delete(v.DateSpecificSlots, d)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := dao.UpsertVenue(ctx, *v); err != nil {
		return 0, fmt.Errorf("failed to delete date specific slots for %s: %w", venueID, err)
	}
	log.Printf("[RedisVenueDAO] Deleted %d dates of slots for venue %s", removed, venueID)
	return removed, nil
}
