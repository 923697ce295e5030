package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/antonk9218/authd/internal/server/models"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// InMemoryRepository keeps accounts in a map guarded by a mutex. The
// case-insensitive unique index is emulated with a primary-strength collator,
// matching the collation the postgres schema applies to usernames.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.Account
	collator *collate.Collator
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:     make(map[string]*models.Account),
		collator: collate.New(language.English, collate.Loose),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findLocked(acc.Username) != nil {
		return nil, common.ErrAlreadyExists
	}

	stored := cloneAccount(acc)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = stored

	return cloneAccount(stored), nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc := r.findLocked(username)
	if acc == nil {
		return nil, common.ErrNotFound
	}
	return cloneAccount(acc), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneAccount(acc), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, acc *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[acc.ID]
	if !ok {
		return common.ErrNotFound
	}

	if other := r.findLocked(acc.Username); other != nil && other.ID != acc.ID {
		return common.ErrAlreadyExists
	}

	updated := cloneAccount(acc)
	updated.CreatedAt = stored.CreatedAt
	r.byID[acc.ID] = updated

	return nil
}

// findLocked scans for a username under the case-insensitive collation.
// Callers must hold the mutex.
func (r *InMemoryRepository) findLocked(username string) *models.Account {
	for _, acc := range r.byID {
		if r.collator.CompareString(acc.Username, username) == 0 {
			return acc
		}
	}
	return nil
}

func cloneAccount(acc *models.Account) *models.Account {
	c := *acc
	if acc.LastAttempt != nil {
		t := *acc.LastAttempt
		c.LastAttempt = &t
	}
	return &c
}
