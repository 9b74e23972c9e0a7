package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresReplyStore persists replies in Postgres.
type PostgresReplyStore struct {
	pool *pgxpool.Pool
}

func NewPostgresReplyStore(pool *pgxpool.Pool) *PostgresReplyStore {
	return &PostgresReplyStore{pool: pool}
}

func (s *PostgresReplyStore) Create(ctx context.Context, r NewReply) (Reply, error) {
	id := "reply-" + uuid.NewString()
	const q = `INSERT INTO replies (id, content, thread_id, comment_id, owner)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id, content, owner`
	var out Reply
	err := s.pool.QueryRow(ctx, q, id, r.Content, r.ThreadID, r.CommentID, r.Owner).
		Scan(&out.ID, &out.Content, &out.Owner)
	return out, err
}

func (s *PostgresReplyStore) FindByCommentID(ctx context.Context, commentID string) ([]ReplyRow, error) {
	const q = `SELECT r.id, u.username, r.date, r.content, r.is_deleted
	           FROM replies r
	           JOIN users u ON u.id = r.owner
	           WHERE r.comment_id = $1
	           ORDER BY r.date ASC`
	rows, err := s.pool.Query(ctx, q, commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReplyRow
	for rows.Next() {
		var r ReplyRow
		if err := rows.Scan(&r.ID, &r.Username, &r.Date, &r.Content, &r.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresReplyStore) CheckAvailable(ctx context.Context, replyID, commentID, threadID string) error {
	const q = `SELECT EXISTS(SELECT 1 FROM replies
	           WHERE id = $1 AND comment_id = $2 AND thread_id = $3 AND is_deleted = FALSE)`
	var ok bool
	if err := s.pool.QueryRow(ctx, q, replyID, commentID, threadID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresReplyStore) CheckOwner(ctx context.Context, replyID, commentID, threadID, owner string) error {
	const q = `SELECT owner FROM replies
	           WHERE id = $1 AND comment_id = $2 AND thread_id = $3 AND is_deleted = FALSE`
	var stored string
	err := s.pool.QueryRow(ctx, q, replyID, commentID, threadID).Scan(&stored)
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

func (s *PostgresReplyStore) SoftDelete(ctx context.Context, replyID string) error {
	const q = `UPDATE replies SET is_deleted = TRUE WHERE id = $1`
	tag, err := s.pool.Exec(ctx, q, replyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvariant
	}
	return nil
}
