package models

import "time"

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           int64     `json:"id"`
	Account      string    `json:"account"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TokenVersion int64     `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
