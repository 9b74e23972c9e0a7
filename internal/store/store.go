// Package store defines the persistence ports of the forum and their
// Postgres and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	// ErrInvariant reports a mutation that should have affected exactly one
	// row but affected none. A bug or a lost race, never normal user input.
	ErrInvariant = errors.New("invariant violation")
)

type NewThread struct {
	Title string
	Body  string
	Owner string
}

// Thread is a thread row as persisted.
type Thread struct {
	ID    string
	Title string
	Body  string
	Owner string
	Date  time.Time
}

// ThreadDetail is a thread row joined with its author's username.
type ThreadDetail struct {
	ID       string
	Title    string
	Body     string
	Date     time.Time
	Username string
}

type ThreadStore interface {
	Create(ctx context.Context, t NewThread) (Thread, error)
	FindByID(ctx context.Context, threadID string) (ThreadDetail, error)
	// Exists reports ErrNotFound when no thread row has the given id.
	Exists(ctx context.Context, threadID string) error
}

type NewComment struct {
	ThreadID string
	Owner    string
	Content  string
}

// Comment is the subset of a comment row returned after insertion.
type Comment struct {
	ID      string
	Content string
	Owner   string
}

// CommentRow is a comment joined with its author's username, as listed
// under a thread. IsDeleted stays internal; callers mask it before any
// client-facing output.
type CommentRow struct {
	ID        string
	Username  string
	Date      time.Time
	Content   string
	IsDeleted bool
}

type CommentStore interface {
	Create(ctx context.Context, c NewComment) (Comment, error)
	// FindByThreadID returns the thread's comments ordered by creation
	// date ascending. The ordering is part of the contract.
	FindByThreadID(ctx context.Context, threadID string) ([]CommentRow, error)
	// Exists reports ErrNotFound when no comment row has the given id,
	// deleted or not.
	Exists(ctx context.Context, commentID string) error
	// CheckAvailable reports ErrNotFound unless the comment exists, is not
	// soft-deleted and belongs to threadID. One query, no check-then-use gap.
	CheckAvailable(ctx context.Context, commentID, threadID string) error
	// CheckOwner reports ErrNotFound when CheckAvailable would, and
	// ErrForbidden when the stored owner differs from owner.
	CheckOwner(ctx context.Context, commentID, threadID, owner string) error
	// SoftDelete flips is_deleted and reports ErrInvariant when no row
	// matched.
	SoftDelete(ctx context.Context, commentID string) error
}

type NewReply struct {
	ThreadID  string
	CommentID string
	Owner     string
	Content   string
}

// Reply is the subset of a reply row returned after insertion.
type Reply struct {
	ID      string
	Content string
	Owner   string
}

// ReplyRow is a reply joined with its author's username, as listed under
// a comment.
type ReplyRow struct {
	ID        string
	Username  string
	Date      time.Time
	Content   string
	IsDeleted bool
}

type ReplyStore interface {
	Create(ctx context.Context, r NewReply) (Reply, error)
	// FindByCommentID returns the comment's replies ordered by creation
	// date ascending.
	FindByCommentID(ctx context.Context, commentID string) ([]ReplyRow, error)
	// CheckAvailable verifies the full ancestor chain: the reply must be
	// live and linked to commentID, which must be linked to threadID.
	CheckAvailable(ctx context.Context, replyID, commentID, threadID string) error
	CheckOwner(ctx context.Context, replyID, commentID, threadID, owner string) error
	SoftDelete(ctx context.Context, replyID string) error
}

// LikeStore persists at most one like row per (comment, owner) pair. The
// uniqueness is enforced by the backend (unique constraint), not by the
// caller's check-then-act sequence.
type LikeStore interface {
	Exists(ctx context.Context, threadID, commentID, owner string) (bool, error)
	Create(ctx context.Context, threadID, commentID, owner string) error
	Delete(ctx context.Context, threadID, commentID, owner string) error
	CountForComment(ctx context.Context, commentID string) (int, error)
}

type CreateUserParams struct {
	Username     string
	Fullname     string
	PasswordHash string
}

type User struct {
	ID       string
	Username string
	Fullname string
}

// UserRow carries the credential hash alongside the public user fields.
type UserRow struct {
	User         User
	PasswordHash string
}

type UserStore interface {
	// Create reports ErrConflict when the username is already taken.
	Create(ctx context.Context, p CreateUserParams) (User, error)
	FindByUsername(ctx context.Context, username string) (UserRow, error)
}

// RefreshSession is a persisted refresh token, stored by hash only.
type RefreshSession struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
}

type AuthenticationStore interface {
	Save(ctx context.Context, s RefreshSession) error
	FindByTokenHash(ctx context.Context, tokenHash string) (RefreshSession, error)
	// DeleteByTokenHash reports ErrNotFound when no session matched.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}
