package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/antonk9218/authd/internal/dbx"
	"github.com/antonk9218/authd/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (id, username, password_hash, attempts)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	acc.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		acc.ID, acc.Username, acc.PasswordHash, acc.Attempts).Scan(&acc.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, created_at, attempts, last_attempt FROM accounts
		 WHERE LOWER(username) = LOWER($1)
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, created_at, attempts, last_attempt FROM accounts
		 WHERE id = $1
		 `

	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, acc *models.Account) error {
	query :=
		`UPDATE accounts
		 SET username = $2, password_hash = $3, attempts = $4, last_attempt = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		acc.ID, acc.Username, acc.PasswordHash, acc.Attempts, nullableTime(acc.LastAttempt))

	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	acc := &models.Account{}
	var lastAttempt sql.NullTime

	err := row.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.CreatedAt, &acc.Attempts, &lastAttempt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lastAttempt.Valid {
		acc.LastAttempt = &lastAttempt.Time
	}

	return acc, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
