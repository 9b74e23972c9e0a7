package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAuthenticationStore persists refresh sessions in Postgres.
type PostgresAuthenticationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAuthenticationStore(pool *pgxpool.Pool) *PostgresAuthenticationStore {
	return &PostgresAuthenticationStore{pool: pool}
}

func (s *PostgresAuthenticationStore) Save(ctx context.Context, sess RefreshSession) error {
	const q = `INSERT INTO authentications (token_hash, user_id, expires_at)
	           VALUES ($1, $2, $3)`
	_, err := s.pool.Exec(ctx, q, sess.TokenHash, sess.UserID, sess.ExpiresAt)
	return err
}

func (s *PostgresAuthenticationStore) FindByTokenHash(ctx context.Context, tokenHash string) (RefreshSession, error) {
	const q = `SELECT token_hash, user_id, expires_at
	           FROM authentications
	           WHERE token_hash = $1`
	var sess RefreshSession
	err := s.pool.QueryRow(ctx, q, tokenHash).
		Scan(&sess.TokenHash, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RefreshSession{}, ErrNotFound
		}
		return RefreshSession{}, err
	}
	return sess, nil
}

func (s *PostgresAuthenticationStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	const q = `DELETE FROM authentications WHERE token_hash = $1`
	tag, err := s.pool.Exec(ctx, q, tokenHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
