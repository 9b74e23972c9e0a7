package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLikeStore persists likes in Postgres. The likes table carries a
// unique constraint on (comment_id, owner); that constraint, not this code,
// is what guarantees at most one like per user per comment under races.
type PostgresLikeStore struct {
	pool *pgxpool.Pool
}

func NewPostgresLikeStore(pool *pgxpool.Pool) *PostgresLikeStore {
	return &PostgresLikeStore{pool: pool}
}

func (s *PostgresLikeStore) Exists(ctx context.Context, threadID, commentID, owner string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM likes
	           WHERE thread_id = $1 AND comment_id = $2 AND owner = $3)`
	var exists bool
	err := s.pool.QueryRow(ctx, q, threadID, commentID, owner).Scan(&exists)
	return exists, err
}

// Create inserts a like row. A concurrent duplicate degrades to a no-op via
// the unique constraint instead of surfacing an error.
func (s *PostgresLikeStore) Create(ctx context.Context, threadID, commentID, owner string) error {
	id := "like-" + uuid.NewString()
	const q = `INSERT INTO likes (id, thread_id, comment_id, owner)
	           VALUES ($1, $2, $3, $4)
	           ON CONFLICT (comment_id, owner) DO NOTHING`
	_, err := s.pool.Exec(ctx, q, id, threadID, commentID, owner)
	return err
}

func (s *PostgresLikeStore) Delete(ctx context.Context, threadID, commentID, owner string) error {
	const q = `DELETE FROM likes WHERE thread_id = $1 AND comment_id = $2 AND owner = $3`
	_, err := s.pool.Exec(ctx, q, threadID, commentID, owner)
	return err
}

func (s *PostgresLikeStore) CountForComment(ctx context.Context, commentID string) (int, error) {
	const q = `SELECT COUNT(id) FROM likes WHERE comment_id = $1`
	var n int
	err := s.pool.QueryRow(ctx, q, commentID).Scan(&n)
	return n, err
}
