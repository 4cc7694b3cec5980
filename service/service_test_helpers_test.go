package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"arena-pro/api/expo"
	"arena-pro/dao/redis"
	"arena-pro/db"
	"arena-pro/models"
	"arena-pro/models/slot"
	"arena-pro/models/venue"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDate = "2030-05-10"

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingBroadcaster) BroadcastAvailability(venueID, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, venueID+"|"+date)
}

func (r *recordingBroadcaster) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type mockPushAPI struct {
	mock.Mock
}

func (m *mockPushAPI) SendPush(ctx context.Context, messages ...expo.PushMessage) ([]expo.PushTicket, error) {
	args := m.Called(ctx, messages)
	tickets, _ := args.Get(0).([]expo.PushTicket)
	return tickets, args.Error(1)
}

type fixture struct {
	venueDao    *redis.RedisVenueDAO
	bookingDao  *redis.RedisBookingDAO
	broadcaster *recordingBroadcaster
}

func newFixture() *fixture {
	return newFixtureWithClient(db.NewMockRedisClient())
}

func newFixtureWithClient(client db.RedisClient) *fixture {
	return &fixture{
		venueDao:    redis.NewRedisVenueDAO(client),
		bookingDao:  redis.NewRedisBookingDAO(client),
		broadcaster: &recordingBroadcaster{},
	}
}

// testVenue opens 17:00-20:00 on testDate at 2000/h with a 10% discount.
// 19:00 is deselected by the admin.
func testVenue() venue.Venue {
	return venue.Venue{
		VenueID:            "turf-1",
		VenueName:          "Green Turf",
		VenueLat:           12.97,
		VenueLon:           77.59,
		SportType:          "football",
		PricePerHour:       models.NewFlexNumber(2000),
		DiscountPercentage: models.NewFlexNumber(10),
		OperatingHours:     &venue.OperatingHours{Open: "06:00", Close: "23:00"},
		DateSpecificSlots: map[string][]slot.Slot{
			testDate: {
				{ID: "a", Time: "17:00", EndTime: "18:00", Price: 2500, PriceType: slot.PriceTypePrimeTime},
				{ID: "b", StartTime: "18:00", EndTime: "19:00", Price: 2500, Selected: slot.Bool(true)},
				{ID: "c", StartTime: "19:00", EndTime: "20:00", Price: 2500, Selected: slot.Bool(false)},
			},
		},
	}
}

func (f *fixture) seed(t *testing.T, v venue.Venue) {
	t.Helper()
	require.NoError(t, f.venueDao.UpsertVenue(context.Background(), v))
}

var errRedisBlip = errors.New("redis blip")

// failingRedisClient fails the next N calls of selected operations.
type failingRedisClient struct {
	*db.MockRedisClient

	mu              sync.Mutex
	sRemFailures    int
	bookingSetFails int
}

func (c *failingRedisClient) SRem(ctx context.Context, key string, members ...string) error {
	c.mu.Lock()
	if c.sRemFailures > 0 {
		c.sRemFailures--
		c.mu.Unlock()
		return errRedisBlip
	}
	c.mu.Unlock()
	return c.MockRedisClient.SRem(ctx, key, members...)
}

func (c *failingRedisClient) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if c.bookingSetFails > 0 && strings.HasPrefix(key, "booking_v1:") {
		c.bookingSetFails--
		c.mu.Unlock()
		return errRedisBlip
	}
	c.mu.Unlock()
	return c.MockRedisClient.Set(ctx, key, value)
}
