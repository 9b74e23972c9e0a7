// Package forum holds the use-case layer: every mutation runs a cascading
// availability/ownership validation chain against the store ports before it
// touches anything, and the read side folds a whole thread into one tree.
package forum

import (
	"context"
	"errors"

	"github.com/example/forum-api/internal/store"
)

// Service wires the store ports together. All methods are safe for
// concurrent use; the service itself holds no state.
type Service struct {
	Threads  store.ThreadStore
	Comments store.CommentStore
	Replies  store.ReplyStore
	Likes    store.LikeStore
}

func (s Service) CreateThread(ctx context.Context, t store.NewThread) (store.Thread, error) {
	return s.Threads.Create(ctx, t)
}

// AddComment requires the parent thread to exist.
func (s Service) AddComment(ctx context.Context, c store.NewComment) (store.Comment, error) {
	if err := s.Threads.Exists(ctx, c.ThreadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Comment{}, notFound("thread tidak ditemukan")
		}
		return store.Comment{}, err
	}
	return s.Comments.Create(ctx, c)
}

// DeleteComment soft-deletes a comment after the availability-then-ownership
// chain passes. Availability failures surface before ownership ones, so a
// deleted or mislinked comment reads as missing rather than forbidden.
func (s Service) DeleteComment(ctx context.Context, threadID, commentID, owner string) error {
	if err := s.Comments.CheckAvailable(ctx, commentID, threadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("comment tidak ditemukan")
		}
		return err
	}
	if err := s.Comments.CheckOwner(ctx, commentID, threadID, owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("comment tidak ditemukan")
		}
		if errors.Is(err, store.ErrForbidden) {
			return forbidden("anda tidak memiliki akses terhadap comment ini")
		}
		return err
	}
	return s.Comments.SoftDelete(ctx, commentID)
}

// AddReply requires both ancestors to exist.
func (s Service) AddReply(ctx context.Context, r store.NewReply) (store.Reply, error) {
	if err := s.Threads.Exists(ctx, r.ThreadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Reply{}, notFound("thread tidak ditemukan")
		}
		return store.Reply{}, err
	}
	if err := s.Comments.Exists(ctx, r.CommentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Reply{}, notFound("comment tidak ditemukan")
		}
		return store.Reply{}, err
	}
	return s.Replies.Create(ctx, r)
}

// DeleteReply validates the full reply->comment->thread chain, then
// ownership, then soft-deletes.
func (s Service) DeleteReply(ctx context.Context, threadID, commentID, replyID, owner string) error {
	if err := s.Replies.CheckAvailable(ctx, replyID, commentID, threadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("reply tidak ditemukan")
		}
		return err
	}
	if err := s.Replies.CheckOwner(ctx, replyID, commentID, threadID, owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("reply tidak ditemukan")
		}
		if errors.Is(err, store.ErrForbidden) {
			return forbidden("anda tidak memiliki akses terhadap reply ini")
		}
		return err
	}
	return s.Replies.SoftDelete(ctx, replyID)
}

// ToggleLike flips the like state for (comment, owner). Anyone may like any
// live comment; there is no ownership check. The comment must be live and
// actually belong to threadID before any like row is written. Both outcomes
// are success to the caller; the store's unique constraint keeps concurrent
// toggles from ever producing two rows.
func (s Service) ToggleLike(ctx context.Context, threadID, commentID, owner string) error {
	if err := s.Threads.Exists(ctx, threadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("thread tidak ditemukan")
		}
		return err
	}
	if err := s.Comments.CheckAvailable(ctx, commentID, threadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("comment tidak ditemukan")
		}
		return err
	}

	liked, err := s.Likes.Exists(ctx, threadID, commentID, owner)
	if err != nil {
		return err
	}
	if liked {
		return s.Likes.Delete(ctx, threadID, commentID, owner)
	}
	return s.Likes.Create(ctx, threadID, commentID, owner)
}
