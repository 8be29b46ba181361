package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/directory-service/internal/persistence"
)

// LoginRepository is the credential store adapter. It exposes only the two
// lookups the login flow needs; credentials are never returned to callers
// beyond the stored secret for comparison.
type LoginRepository interface {
	// CountCredentials counts exact (username, password) matches.
	CountCredentials(ctx context.Context, username, password string) (int, error)
	// StoredPassword fetches the persisted secret for a username.
	// Returns pgx.ErrNoRows when the username is unknown.
	StoredPassword(ctx context.Context, username string) (string, error)
}

type loginRepository struct {
	db *persistence.Postgres
}

// NewLoginRepository returns a Postgres-backed implementation.
func NewLoginRepository(db *persistence.Postgres) LoginRepository {
	return &loginRepository{db: db}
}

func (r *loginRepository) CountCredentials(ctx context.Context, username, password string) (int, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var count int
	err = conn.QueryRow(ctx,
		`SELECT COUNT(1) FROM logins WHERE username = $1 AND password = $2`,
		username, password,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *loginRepository) StoredPassword(ctx context.Context, username string) (string, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	var stored string
	err = conn.QueryRow(ctx, `SELECT password FROM logins WHERE username = $1`, username).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", pgx.ErrNoRows
		}
		return "", err
	}
	return stored, nil
}
