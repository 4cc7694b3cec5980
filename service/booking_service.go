package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"arena-pro/api/expo"
	"arena-pro/dao/redis"
	"arena-pro/metrics"
	"arena-pro/models/booking"
	"arena-pro/models/slot"
	"arena-pro/pricing"
	"arena-pro/slots"
	"arena-pro/squad"

	"github.com/google/uuid"
)

// CreateBookingRequest is what a player submits to reserve a slot.
type CreateBookingRequest struct {
	VenueID         string `json:"venueId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	NumberOfPlayers int    `json:"numberOfPlayers"`
	PlayersNeeded   int    `json:"playersNeeded"`
	PushToken       string `json:"pushToken,omitempty"`
}

// JoinSquadRequest is a recruit asking for one of the open squad spots.
type JoinSquadRequest struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type BookingService struct {
	venueDao    *redis.RedisVenueDAO
	bookingDao  *redis.RedisBookingDAO
	pushAPI     expo.PushAPI
	broadcaster AvailabilityBroadcaster
	now         func() time.Time

	// joins and cancels are read-modify-write on the booking document
	locks [bookingLockStripes]sync.Mutex
}

const bookingLockStripes = 64

func NewBookingService(
	venueDao *redis.RedisVenueDAO,
	bookingDao *redis.RedisBookingDAO,
	pushAPI expo.PushAPI,
	broadcaster AvailabilityBroadcaster) *BookingService {

	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &BookingService{
		venueDao:    venueDao,
		bookingDao:  bookingDao,
		pushAPI:     pushAPI,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (bs *BookingService) lockFor(bookingID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(bookingID))
	return &bs.locks[h.Sum32()%bookingLockStripes]
}

func validateCreate(req CreateBookingRequest) error {
	switch {
	case strings.TrimSpace(req.VenueID) == "":
		return fmt.Errorf("%w: venueId is required", ErrInvalidRequest)
	case strings.TrimSpace(req.UserID) == "":
		return fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	case req.NumberOfPlayers < 1:
		return fmt.Errorf("%w: numberOfPlayers must be at least 1", ErrInvalidRequest)
	case req.PlayersNeeded < 0:
		return fmt.Errorf("%w: playersNeeded must not be negative", ErrInvalidRequest)
	}
	if _, err := slots.ParseHour(req.StartTime); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return validateDate(req.Date)
}

// CreateBooking reserves one of the date's available slots. The amount due is
// the slot price after the venue discount.
func (bs *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*booking.Booking, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	v, err := bs.venueDao.GetVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	booked, err := bs.bookingDao.GetBookedStartTimes(ctx, req.VenueID, req.Date)
	if err != nil {
		return nil, err
	}

	startTime := strings.TrimSpace(req.StartTime)
	var chosen *slot.Slot
	for _, s := range slots.ResolveAvailableSlots(v, req.Date, booked) {
		if s.StartTime == startTime {
			chosen = &s
			break
		}
	}
	if chosen == nil || !chosen.Available {
		metrics.RecordBookingConflict()
		return nil, fmt.Errorf("%w: %s on %s at %s", ErrSlotUnavailable, req.VenueID, req.Date, startTime)
	}

	if err := bs.bookingDao.ClaimStartTime(ctx, req.VenueID, req.Date, startTime); err != nil {
		if errors.Is(err, redis.ErrStartTimeTaken) {
			metrics.RecordBookingConflict()
			return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		}
		return nil, err
	}

	discount := pricing.GetDiscountValue(v)
	b := &booking.Booking{
		ID:                 uuid.NewString(),
		VenueID:            v.VenueID,
		VenueName:          v.VenueName,
		UserID:             req.UserID,
		UserName:           req.UserName,
		Date:               req.Date,
		StartTime:          startTime,
		EndTime:            chosen.EndTime,
		NumberOfPlayers:    req.NumberOfPlayers,
		PlayersNeeded:      req.PlayersNeeded,
		PlayersJoined:      []booking.JoinedPlayer{},
		OriginalAmount:     chosen.Price,
		DiscountPercentage: discount,
		TotalAmount:        int(pricing.CalculateDiscountedPrice(float64(chosen.Price), discount)),
		Status:             booking.StatusConfirmed,
		OrganizerPushToken: req.PushToken,
		CreatedAt:          bs.now().UnixMilli(),
	}

	if err := bs.bookingDao.SaveBooking(ctx, b); err != nil {
		if relErr := bs.bookingDao.ReleaseStartTime(ctx, req.VenueID, req.Date, startTime); relErr != nil {
			log.Printf("[BookingService] Failed to release %s %s %s after save error: %v", req.VenueID, req.Date, startTime, relErr)
		}
		return nil, err
	}

	log.Printf("[BookingService] Created %s amount=%d", b.ToString(), b.TotalAmount)
	metrics.RecordBookingCreated()
	bs.broadcaster.BroadcastAvailability(b.VenueID, b.Date)
	return b, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, bookingID string) (*booking.Booking, error) {
	return bs.bookingDao.GetBooking(ctx, bookingID)
}

// CancelBooking frees the slot. Cancelling twice is a no-op. An empty uid
// skips the organizer check (admin use).
func (bs *BookingService) CancelBooking(ctx context.Context, bookingID, uid string) (*booking.Booking, error) {
	lock := bs.lockFor(bookingID)
	lock.Lock()
	defer lock.Unlock()

	b, err := bs.bookingDao.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if uid != "" && uid != b.UserID {
		return nil, ErrNotOrganizer
	}
	if !b.IsActive() {
		return b, nil
	}

	// A stored cancellation implies the start time was released.
	if err := bs.bookingDao.ReleaseStartTime(ctx, b.VenueID, b.Date, b.StartTime); err != nil {
		return nil, err
	}
	b.Status = booking.StatusCancelled
	if err := bs.bookingDao.SaveBooking(ctx, b); err != nil {
		if claimErr := bs.bookingDao.ClaimStartTime(ctx, b.VenueID, b.Date, b.StartTime); claimErr != nil {
			log.Printf("[BookingService] Failed to reclaim %s %s %s after save error: %v", b.VenueID, b.Date, b.StartTime, claimErr)
		}
		return nil, err
	}

	log.Printf("[BookingService] Cancelled %s", b.ToString())
	metrics.RecordBookingCancelled()
	bs.broadcaster.BroadcastAvailability(b.VenueID, b.Date)
	return b, nil
}

func (bs *BookingService) GetSquadStatus(ctx context.Context, bookingID string) (squad.Status, error) {
	b, err := bs.bookingDao.GetBooking(ctx, bookingID)
	if err != nil {
		return squad.Status{}, err
	}
	return squad.ComputeSquadStatus(b)
}

// JoinSquad adds a recruit paying the per-player share and notifies the
// organizer.
func (bs *BookingService) JoinSquad(ctx context.Context, bookingID string, req JoinSquadRequest) (*booking.Booking, squad.Status, error) {
	if strings.TrimSpace(req.UID) == "" {
		return nil, squad.Status{}, fmt.Errorf("%w: uid is required", ErrInvalidRequest)
	}

	lock := bs.lockFor(bookingID)
	lock.Lock()
	defer lock.Unlock()

	b, err := bs.bookingDao.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, squad.Status{}, err
	}
	if err := squad.ValidateJoin(b, req.UID); err != nil {
		metrics.RecordSquadJoin(joinFailureKind(err))
		return nil, squad.Status{}, err
	}

	before, err := squad.ComputeSquadStatus(b)
	if err != nil {
		return nil, squad.Status{}, err
	}
	b.PlayersJoined = append(b.PlayersJoined, booking.JoinedPlayer{
		UID:           req.UID,
		Name:          req.Name,
		PaidAmount:    before.PricePerPlayer,
		PaymentStatus: booking.PaymentPaid,
		JoinedAt:      bs.now().UnixMilli(),
	})
	if err := bs.bookingDao.SaveBooking(ctx, b); err != nil {
		return nil, squad.Status{}, err
	}

	after, err := squad.ComputeSquadStatus(b)
	if err != nil {
		return nil, squad.Status{}, err
	}
	log.Printf("[BookingService] %s joined squad %s (%d/%d)", req.UID, b.ID, after.CurrentPlayers, after.TotalPlayers)
	metrics.RecordSquadJoin("ok")

	bs.notifyOrganizer(ctx, b, req.Name, after)
	return b, after, nil
}

func (bs *BookingService) notifyOrganizer(ctx context.Context, b *booking.Booking, playerName string, status squad.Status) {
	if bs.pushAPI == nil || b.OrganizerPushToken == "" {
		return
	}
	if playerName == "" {
		playerName = "A player"
	}
	body := fmt.Sprintf("%s joined your game at %s on %s. %d spots left.",
		playerName, b.StartTime, b.Date, status.DisplaySpotsLeft)
	if status.Full {
		body = fmt.Sprintf("%s joined your game at %s on %s. Your squad is complete!",
			playerName, b.StartTime, b.Date)
	}

	_, err := bs.pushAPI.SendPush(ctx, expo.PushMessage{
		To:    b.OrganizerPushToken,
		Title: "New squad member",
		Body:  body,
		Sound: "default",
		Data:  map[string]string{"bookingId": b.ID, "type": "squad_join"},
	})
	if err != nil {
		log.Printf("[BookingService] Failed to notify organizer of %s: %v", b.ID, err)
		metrics.RecordNotification("squad_join", "error")
		return
	}
	metrics.RecordNotification("squad_join", "ok")
}

func joinFailureKind(err error) string {
	switch {
	case errors.Is(err, squad.ErrSquadFull):
		return "squad_full"
	case errors.Is(err, squad.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, squad.ErrOrganizerCannotJoin):
		return "organizer"
	case errors.Is(err, squad.ErrBookingCancelled):
		return "cancelled"
	default:
		return "invalid"
	}
}
