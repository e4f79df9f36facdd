package models

import "time"

// User is an identity record. Email is unique and stored case-sensitively;
// PasswordHash is opaque to everything except the secrets package.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
