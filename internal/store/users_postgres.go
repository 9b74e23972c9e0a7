package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore persists users in Postgres.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, p CreateUserParams) (User, error) {
	id := "user-" + uuid.NewString()
	const q = `INSERT INTO users (id, username, password, fullname)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, username, fullname`
	var u User
	err := s.pool.QueryRow(ctx, q, id, p.Username, p.PasswordHash, p.Fullname).
		Scan(&u.ID, &u.Username, &u.Fullname)
	if err != nil {
		// unique violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrConflict
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (UserRow, error) {
	const q = `SELECT id, username, fullname, password
	           FROM users
	           WHERE username = $1`
	var row UserRow
	err := s.pool.QueryRow(ctx, q, username).
		Scan(&row.User.ID, &row.User.Username, &row.User.Fullname, &row.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRow{}, ErrNotFound
		}
		return UserRow{}, err
	}
	return row, nil
}
