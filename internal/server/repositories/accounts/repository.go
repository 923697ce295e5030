// Package accounts contains the credential store contract and its
// implementations. Username lookups are case-insensitive; uniqueness is
// enforced by the store, not by callers.
package accounts

import (
	"context"

	"github.com/antonk9218/authd/internal/server/models"
)

type Repository interface {
	// Create inserts the account, assigns its identifier and creation
	// timestamp, and returns common.ErrAlreadyExists when the username is
	// already taken under the case-insensitive index.
	Create(ctx context.Context, acc *models.Account) (*models.Account, error)

	// GetByUsername finds an account by case-insensitive username match.
	// Returns common.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByID finds an account by its identifier.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// Update persists the mutable fields (username, password hash, attempts,
	// last-attempt timestamp). A username change can hit the unique index
	// and return common.ErrAlreadyExists.
	Update(ctx context.Context, acc *models.Account) error
}
