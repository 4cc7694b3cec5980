package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"arena-pro/db"
	"arena-pro/models/booking"
)

const BOOKING_KEY_FORMAT_V1 = "booking_v1:%s"

// BOOKED_TIMES_KEY_FORMAT_V1 holds the start times taken on a venue's date.
const BOOKED_TIMES_KEY_FORMAT_V1 = "booked_times_v1:%s:%s"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrStartTimeTaken  = errors.New("start time already booked")
)

// RedisBookingDAO stores bookings and the per-date index of taken start times.
type RedisBookingDAO struct {
	client db.RedisClient
}

func NewRedisBookingDAO(client db.RedisClient) *RedisBookingDAO {
	return &RedisBookingDAO{client: client}
}

func bookingKey(id string) string {
	return fmt.Sprintf(BOOKING_KEY_FORMAT_V1, id)
}

func bookedTimesKey(venueID, date string) string {
	return fmt.Sprintf(BOOKED_TIMES_KEY_FORMAT_V1, venueID, date)
}

// ClaimStartTime atomically marks a start time as taken. It fails with
// ErrStartTimeTaken when someone else holds it.
func (dao *RedisBookingDAO) ClaimStartTime(ctx context.Context, venueID, date, startTime string) error {
	added, err := dao.client.SAdd(ctx, bookedTimesKey(venueID, date), startTime)
	if err != nil {
		return fmt.Errorf("failed to claim start time: %w", err)
	}
	if added == 0 {
		return fmt.Errorf("%w: %s %s %s", ErrStartTimeTaken, venueID, date, startTime)
	}
	return nil
}

// ReleaseStartTime frees a start time after a cancellation or failed write.
func (dao *RedisBookingDAO) ReleaseStartTime(ctx context.Context, venueID, date, startTime string) error {
	if err := dao.client.SRem(ctx, bookedTimesKey(venueID, date), startTime); err != nil {
		return fmt.Errorf("failed to release start time: %w", err)
	}
	return nil
}

// GetBookedStartTimes lists the taken start times of a venue's date, sorted.
func (dao *RedisBookingDAO) GetBookedStartTimes(ctx context.Context, venueID, date string) ([]string, error) {
	times, err := dao.client.SMembers(ctx, bookedTimesKey(venueID, date))
	if err != nil {
		return nil, fmt.Errorf("failed to list booked start times: %w", err)
	}
	sort.Strings(times)
	return times, nil
}

// SaveBooking writes the booking document.
func (dao *RedisBookingDAO) SaveBooking(ctx context.Context, b *booking.Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal booking %s: %w", b.ID, err)
	}
	if err := dao.client.Set(ctx, bookingKey(b.ID), string(data)); err != nil {
		return fmt.Errorf("failed to set booking in redis: %w", err)
	}
	return nil
}

// GetBooking loads a booking by id.
func (dao *RedisBookingDAO) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	str, err := dao.client.Get(ctx, bookingKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("failed to get booking from redis: %w", err)
	}
	var b booking.Booking
	if err := json.Unmarshal([]byte(str), &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking JSON: %w", err)
	}
	return &b, nil
}

// DeleteBookedTimes drops the whole start-time index of a past date.
func (dao *RedisBookingDAO) DeleteBookedTimes(ctx context.Context, venueID, date string) error {
	return dao.client.Del(ctx, bookedTimesKey(venueID, date))
}
