package model

import "time"

// MaxReviewLength is the longest review text accepted, in characters.
const MaxReviewLength = 500

// Review is a short text an account wrote about a movie. MovieID is not
// checked against the catalog.
type Review struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	AccountID string    `json:"accountId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
