package model

import "time"

// Account is a registered identity together with the bookings it owns.
// Bookings live inside the account record and share its lifecycle.
type Account struct {
	AccountID    string    `json:"accountId"`
	PasswordHash string    `json:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	Bookings     []Booking `json:"bookings"`
}

// PublicAccount is what the API returns for an account: everything but the
// credential.
type PublicAccount struct {
	AccountID string    `json:"accountId"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	Bookings  []Booking `json:"bookings"`
}

// Public strips the password hash.
func (a Account) Public() PublicAccount {
	bookings := a.Bookings
	if bookings == nil {
		bookings = []Booking{}
	}
	return PublicAccount{
		AccountID: a.AccountID,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
		Bookings:  bookings,
	}
}
