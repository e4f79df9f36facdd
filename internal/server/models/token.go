package models

import "time"

// AccessToken is a persisted credential record. Hash is the deterministic
// one-way transform of the raw secret and is unique across live credentials;
// the raw secret itself is never stored.
//
// ExpiresAt == nil means the credential never expires. LastUsedAt is nil
// until the first successful validation.
type AccessToken struct {
	ID         string
	UserID     string
	Name       string
	Hash       string
	LastUsedAt *time.Time
	CreatedAt  time.Time
	ExpiresAt  *time.Time
	UpdatedAt  time.Time
}
