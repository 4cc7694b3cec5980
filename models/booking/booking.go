package booking

import "fmt"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Booking is a reserved slot. The squad fields are only used when the
// organizer recruits extra players to split the cost.
type Booking struct {
	ID        string `json:"id"`
	VenueID   string `json:"venueId"`
	VenueName string `json:"venueName,omitempty"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	NumberOfPlayers int            `json:"numberOfPlayers"`
	PlayersNeeded   int            `json:"playersNeeded"`
	PlayersJoined   []JoinedPlayer `json:"playersJoined"`

	OriginalAmount     int     `json:"originalAmount"`
	DiscountPercentage float64 `json:"discountPercentage"`
	TotalAmount        int     `json:"totalAmount"`

	Status             string `json:"status"`
	OrganizerPushToken string `json:"organizerPushToken,omitempty"`
	CreatedAt          int64  `json:"createdAt"`
}

// JoinedPlayer is a player recruited through the squad builder.
type JoinedPlayer struct {
	UID           string `json:"uid"`
	Name          string `json:"name"`
	PaidAmount    int    `json:"paidAmount"`
	PaymentStatus string `json:"paymentStatus"`
	JoinedAt      int64  `json:"joinedAt,omitempty"`
}

// IsActive reports whether the booking still holds its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

func (b *Booking) ToString() string {
	return fmt.Sprintf("Booking(id=%s, venue=%s, date=%s, start=%s, players=%d+%d)",
		b.ID, b.VenueID, b.Date, b.StartTime, b.NumberOfPlayers, b.PlayersNeeded)
}
