package lockout

import (
	"testing"
	"time"

	"github.com/antonk9218/authd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockDuration = 10 * time.Minute

func TestRegisterFailure_FirstFailureStampsWindow(t *testing.T) {
	t.Parallel()

	now := time.Now()
	acc := &models.Account{Attempts: 3}

	RegisterFailure(acc, now, lockDuration)

	require.NotNil(t, acc.LastAttempt)
	assert.Equal(t, now, *acc.LastAttempt)
	assert.Equal(t, 2, acc.Attempts)
}

func TestRegisterFailure_CountsDownToZero(t *testing.T) {
	t.Parallel()

	now := time.Now()
	acc := &models.Account{Attempts: 3}

	for _, want := range []int{2, 1, 0} {
		RegisterFailure(acc, now, lockDuration)
		assert.Equal(t, want, acc.Attempts)
	}
	assert.True(t, acc.Locked())

	// locked accounts are not decremented further
	RegisterFailure(acc, now, lockDuration)
	assert.Equal(t, 0, acc.Attempts)
}

func TestRegisterFailure_ElapsedWindowResetsCounter(t *testing.T) {
	t.Parallel()

	start := time.Now()
	acc := &models.Account{Attempts: 3}

	RegisterFailure(acc, start, lockDuration)
	RegisterFailure(acc, start, lockDuration)
	require.Equal(t, 1, acc.Attempts)

	// next failure arrives after the lock duration has run out:
	// fresh window, so the counter lands on 2 instead of 0
	later := start.Add(lockDuration + time.Second)
	RegisterFailure(acc, later, lockDuration)

	assert.Equal(t, 2, acc.Attempts)
	require.NotNil(t, acc.LastAttempt)
	assert.Equal(t, later, *acc.LastAttempt)
}

func TestRegisterFailure_NoResetWhenLocked(t *testing.T) {
	t.Parallel()

	start := time.Now()
	stamp := start
	acc := &models.Account{Attempts: 0, LastAttempt: &stamp}

	later := start.Add(lockDuration + time.Hour)
	RegisterFailure(acc, later, lockDuration)

	// time alone never unlocks a locked account
	assert.Equal(t, 0, acc.Attempts)
	assert.Equal(t, start, *acc.LastAttempt)
}

func TestRegisterSuccess_RestoresCounterKeepsTimestamp(t *testing.T) {
	t.Parallel()

	stamp := time.Now()
	acc := &models.Account{Attempts: 1, LastAttempt: &stamp}

	RegisterSuccess(acc)

	assert.Equal(t, 3, acc.Attempts)
	require.NotNil(t, acc.LastAttempt)
	assert.Equal(t, stamp, *acc.LastAttempt)
}
