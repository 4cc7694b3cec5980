package services

import (
	"context"
	"log"
	"sort"
	"time"

	"arena-pro/dao/redis"
	"arena-pro/metrics"
)

// CalendarJanitorService periodically drops the curated slots and booked
// start times of dates that are already over.
type CalendarJanitorService struct {
	venueDao   *redis.RedisVenueDAO
	bookingDao *redis.RedisBookingDAO
	now        func() time.Time
}

// NewCalendarJanitorService constructs a new janitor with dependencies.
func NewCalendarJanitorService(
	venueDao *redis.RedisVenueDAO,
	bookingDao *redis.RedisBookingDAO,
) *CalendarJanitorService {
	return &CalendarJanitorService{
		venueDao:   venueDao,
		bookingDao: bookingDao,
		now:        time.Now,
	}
}

// StartPeriodicJob launches the background loop at the given interval. The
// loop ends when ctx is done.
func (cj *CalendarJanitorService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go cj.startPeriodicJob(ctx, interval)
}

func (cj *CalendarJanitorService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CalendarJanitorService] Stopping periodic job.")
			return
		case <-ticker.C:
			log.Println("[CalendarJanitorService] Running periodic calendar janitor job.")
			if pruned, err := cj.PrunePastDates(ctx); err != nil {
				log.Printf("[CalendarJanitorService] PrunePastDates returned error: %v", err)
			} else {
				log.Printf("[CalendarJanitorService] PrunePastDates completed, %d dates removed.", pruned)
			}
		}
	}
}

// PrunePastDates removes every date strictly before today from all venues.
// A failure on one venue is logged and does not stop the others.
func (cj *CalendarJanitorService) PrunePastDates(ctx context.Context) (int, error) {
	today := cj.now().Format(DATE_LAYOUT)

	ids, err := cj.venueDao.ListAllVenueIDs(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("[CalendarJanitorService] Checking %d venues for dates before %s", len(ids), today)

	total := 0
	for _, id := range ids {
		v, err := cj.venueDao.GetVenue(ctx, id)
		if err != nil {
			log.Printf("[CalendarJanitorService] Failed to load venue %s: %v", id, err)
			continue
		}

		var past []string
		for date := range v.DateSpecificSlots {
			if isBefore(date, today) {
				past = append(past, date)
			}
		}
		if len(past) == 0 {
			continue
		}
		sort.Strings(past)

		removed, err := cj.venueDao.DeleteDateSpecificSlots(ctx, id, past...)
		if err != nil {
			log.Printf("[CalendarJanitorService] Failed to prune venue %s: %v", id, err)
			continue
		}
		for _, date := range past {
			if err := cj.bookingDao.DeleteBookedTimes(ctx, id, date); err != nil {
				log.Printf("[CalendarJanitorService] Failed to drop booked times of %s on %s: %v", id, date, err)
			}
		}
		total += removed
	}

	metrics.RecordSlotsPruned(total)
	return total, nil
}

// isBefore compares YYYY-MM-DD dates. Keys that are not dates are kept.
func isBefore(date, today string) bool {
	if validateDate(date) != nil {
		return false
	}
	return date < today
}
