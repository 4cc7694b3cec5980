// Package squad splits the cost of a booking between the organizer's group
// and the players recruited through the squad builder.
package squad

import (
	"errors"
	"fmt"

	"arena-pro/models/booking"
)

var (
	ErrInvalidSquadConfiguration = errors.New("invalid squad configuration")
	ErrSquadFull                 = errors.New("squad is full")
	ErrAlreadyJoined             = errors.New("player already joined this squad")
	ErrOrganizerCannotJoin       = errors.New("organizer cannot join their own squad")
	ErrBookingCancelled          = errors.New("booking is cancelled")
)

// Status is the display and payment-split view of a squad.
type Status struct {
	TotalPlayers   int `json:"totalPlayers"`
	CurrentPlayers int `json:"currentPlayers"`

	// SpotsLeft is raw and goes negative for an overbooked squad.
	// DisplaySpotsLeft is floored at zero.
	SpotsLeft        int  `json:"spotsLeft"`
	DisplaySpotsLeft int  `json:"displaySpotsLeft"`
	Overbooked       bool `json:"overbooked"`
	Full             bool `json:"full"`

	PricePerPlayer  int     `json:"pricePerPlayer"`
	OrganizerShare  int     `json:"organizerShare"`
	ProgressPercent float64 `json:"progressPercent"`
}

// ComputeSquadStatus derives player counts and the per-player price of a
// booking. The per-player price is rounded up, so any remainder is covered
// by the recruits rather than the organizer.
func ComputeSquadStatus(b *booking.Booking) (Status, error) {
	if b == nil {
		return Status{}, fmt.Errorf("%w: no booking", ErrInvalidSquadConfiguration)
	}
	if b.NumberOfPlayers < 1 {
		return Status{}, fmt.Errorf("%w: numberOfPlayers must be at least 1, got %d",
			ErrInvalidSquadConfiguration, b.NumberOfPlayers)
	}
	if b.PlayersNeeded < 0 {
		return Status{}, fmt.Errorf("%w: playersNeeded must not be negative, got %d",
			ErrInvalidSquadConfiguration, b.PlayersNeeded)
	}
	if b.TotalAmount < 0 {
		return Status{}, fmt.Errorf("%w: totalAmount must not be negative, got %d",
			ErrInvalidSquadConfiguration, b.TotalAmount)
	}

	joined := len(b.PlayersJoined)
	total := b.NumberOfPlayers + b.PlayersNeeded
	current := b.NumberOfPlayers + joined
	spotsLeft := b.PlayersNeeded - joined
	perPlayer := (b.TotalAmount + total - 1) / total

	progress := float64(current) / float64(total) * 100
	if progress > 100 {
		progress = 100
	}

	return Status{
		TotalPlayers:     total,
		CurrentPlayers:   current,
		SpotsLeft:        spotsLeft,
		DisplaySpotsLeft: max(spotsLeft, 0),
		Overbooked:       spotsLeft < 0,
		Full:             spotsLeft <= 0,
		PricePerPlayer:   perPlayer,
		OrganizerShare:   max(b.TotalAmount-perPlayer*b.PlayersNeeded, 0),
		ProgressPercent:  progress,
	}, nil
}

// ValidateJoin checks that uid may take one of the open spots.
func ValidateJoin(b *booking.Booking, uid string) error {
	status, err := ComputeSquadStatus(b)
	if err != nil {
		return err
	}
	if !b.IsActive() {
		return ErrBookingCancelled
	}
	if uid == b.UserID {
		return ErrOrganizerCannotJoin
	}
	for _, p := range b.PlayersJoined {
		if p.UID == uid {
			return ErrAlreadyJoined
		}
	}
	if status.Full {
		return ErrSquadFull
	}
	return nil
}
