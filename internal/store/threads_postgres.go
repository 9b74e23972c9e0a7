package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresThreadStore persists threads in Postgres.
type PostgresThreadStore struct {
	pool *pgxpool.Pool
}

func NewPostgresThreadStore(pool *pgxpool.Pool) *PostgresThreadStore {
	return &PostgresThreadStore{pool: pool}
}

func (s *PostgresThreadStore) Create(ctx context.Context, t NewThread) (Thread, error) {
	id := "thread-" + uuid.NewString()
	const q = `INSERT INTO threads (id, title, body, owner)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, title, body, owner, date`
	var out Thread
	err := s.pool.QueryRow(ctx, q, id, t.Title, t.Body, t.Owner).
		Scan(&out.ID, &out.Title, &out.Body, &out.Owner, &out.Date)
	return out, err
}

func (s *PostgresThreadStore) FindByID(ctx context.Context, threadID string) (ThreadDetail, error) {
	const q = `SELECT t.id, t.title, t.body, t.date, u.username
	           FROM threads t
	           JOIN users u ON u.id = t.owner
	           WHERE t.id = $1`
	var d ThreadDetail
	err := s.pool.QueryRow(ctx, q, threadID).
		Scan(&d.ID, &d.Title, &d.Body, &d.Date, &d.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ThreadDetail{}, ErrNotFound
		}
		return ThreadDetail{}, err
	}
	return d, nil
}

func (s *PostgresThreadStore) Exists(ctx context.Context, threadID string) error {
	const q = `SELECT EXISTS(SELECT 1 FROM threads WHERE id = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, threadID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
