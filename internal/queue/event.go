// Package queue defines booking event payloads exchanged over the message
// broker and the consumer that turns them into an audit log.
package queue

// BookingEventsQueue is the durable queue booking events are published to.
const BookingEventsQueue = "booking.events"

// Booking event types.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent is published when a booking is created or cancelled. It
// carries enough for consumers to log or notify without reading the store.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	AccountID  string `json:"account_id"`
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Seats      int    `json:"seats"`
	OccurredAt string `json:"occurred_at"` // RFC 3339, UTC
}
