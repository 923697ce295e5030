// Package lockout implements the failed-attempt policy as pure state
// transitions over an account's attempt counter and last-attempt timestamp.
// Persisting the mutated account is the caller's responsibility.
package lockout

import (
	"time"

	"github.com/antonk9218/authd/internal/server/models"
)

// RegisterFailure applies one failed login to the account.
//
// A failure at full attempts stamps now as the start of a new failure window;
// without the stamp the elapsed-window computation below would be undefined
// for accounts that never failed before. If the window has already run longer
// than lockDuration (and the account is not locked), the counter resets to a
// fresh window before the decrement, so the failure lands on a full counter.
// The counter never goes below zero.
//
// The state machine over attempts is 3 → 2 → 1 → 0 (locked). Transitions back
// to 3 happen only here, via the elapsed window, or in RegisterSuccess.
func RegisterFailure(acc *models.Account, now time.Time, lockDuration time.Duration) {
	if acc.Attempts == models.MaxLoginAttempts {
		stamp := now
		acc.LastAttempt = &stamp
	}

	if acc.LastAttempt != nil {
		elapsed := now.Sub(*acc.LastAttempt)
		if elapsed > lockDuration && acc.Attempts != 0 {
			stamp := now
			acc.LastAttempt = &stamp
			acc.Attempts = models.MaxLoginAttempts
		}
	}

	if acc.Attempts > 0 {
		acc.Attempts--
	}
}

// RegisterSuccess restores the full attempt counter after a successful login.
// The last-attempt timestamp is left untouched.
func RegisterSuccess(acc *models.Account) {
	acc.Attempts = models.MaxLoginAttempts
}
