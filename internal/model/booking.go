package model

import "time"

// Seat bounds for a single booking.
const (
	MinSeats = 1
	MaxSeats = 10
)

// Booking reserves Seats for one showtime of a movie. MovieID is a plain
// reference: the movie may be deleted later and the booking kept.
type Booking struct {
	ID       string    `json:"id"`
	MovieID  string    `json:"movieId"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Seats    int       `json:"seats"`
	BookedAt time.Time `json:"bookedAt"`
}

// EnrichedBooking is a booking joined with the current movie record. Movie is
// nil when the referenced movie no longer exists and is encoded as null.
type EnrichedBooking struct {
	Booking
	Movie *Movie `json:"movie"`
}
