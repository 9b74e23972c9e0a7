package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

func (s *PostgresCommentStore) Create(ctx context.Context, c NewComment) (Comment, error) {
	id := "comment-" + uuid.NewString()
	const q = `INSERT INTO comments (id, content, owner, thread_id)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, content, owner`
	var out Comment
	err := s.pool.QueryRow(ctx, q, id, c.Content, c.Owner, c.ThreadID).
		Scan(&out.ID, &out.Content, &out.Owner)
	return out, err
}

func (s *PostgresCommentStore) FindByThreadID(ctx context.Context, threadID string) ([]CommentRow, error) {
	const q = `SELECT c.id, u.username, c.date, c.content, c.is_deleted
	           FROM comments c
	           JOIN users u ON u.id = c.owner
	           WHERE c.thread_id = $1
	           ORDER BY c.date ASC`
	rows, err := s.pool.Query(ctx, q, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommentRow
	for rows.Next() {
		var c CommentRow
		if err := rows.Scan(&c.ID, &c.Username, &c.Date, &c.Content, &c.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCommentStore) Exists(ctx context.Context, commentID string) error {
	const q = `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, commentID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresCommentStore) CheckAvailable(ctx context.Context, commentID, threadID string) error {
	const q = `SELECT EXISTS(SELECT 1 FROM comments
	           WHERE id = $1 AND thread_id = $2 AND is_deleted = FALSE)`
	var ok bool
	if err := s.pool.QueryRow(ctx, q, commentID, threadID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// CheckOwner reads the stored owner in the same guarded query used for
// availability, so unavailable and not-owned stay distinguishable.
func (s *PostgresCommentStore) CheckOwner(ctx context.Context, commentID, threadID, owner string) error {
	const q = `SELECT owner FROM comments
	           WHERE id = $1 AND thread_id = $2 AND is_deleted = FALSE`
	var stored string
	err := s.pool.QueryRow(ctx, q, commentID, threadID).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if stored != owner {
		return ErrForbidden
	}
	return nil
}

func (s *PostgresCommentStore) SoftDelete(ctx context.Context, commentID string) error {
	const q = `UPDATE comments SET is_deleted = TRUE WHERE id = $1`
	tag, err := s.pool.Exec(ctx, q, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvariant
	}
	return nil
}
