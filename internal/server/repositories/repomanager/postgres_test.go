package repomanager

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounts_ReturnsPostgresRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresRepositoryManager()
	assert.NotNil(t, m.Accounts(db))
}

func TestAccounts_AcceptsTransactionalHandle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	m := NewPostgresRepositoryManager()
	assert.NotNil(t, m.Accounts(tx))
}
