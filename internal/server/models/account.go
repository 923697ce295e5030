// Package models contains the persistent record shapes used by the server.
package models

import "time"

// MaxLoginAttempts is the number of failed logins an account may accumulate
// before it is locked. A successful login restores the counter to this value.
const MaxLoginAttempts = 3

// Account is a registered user's credential record.
//
// ID is assigned by the store at creation. PasswordHash is opaque and never
// serialized outward. Attempts counts the remaining failed logins before the
// account locks; LastAttempt is the start of the current failure window and
// stays nil until the first failed login.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	Attempts     int
	LastAttempt  *time.Time
}

// Locked reports whether the account has exhausted its login attempts.
func (a *Account) Locked() bool {
	return a.Attempts == 0
}
