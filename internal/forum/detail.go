package forum

import (
	"context"
	"errors"
	"time"

	"github.com/example/forum-api/internal/store"
)

// Placeholder content for soft-deleted entries. The row stays in the store;
// only the rendered content changes.
const (
	deletedCommentContent = "**komentar telah dihapus**"
	deletedReplyContent   = "**balasan telah dihapus**"
)

// ThreadDetail is the denormalized read model of one thread. Deletion state
// never appears here: deleted entries carry placeholder content instead.
type ThreadDetail struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Date     time.Time       `json:"date"`
	Username string          `json:"username"`
	Comments []CommentDetail `json:"comments"`
}

type CommentDetail struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Date      time.Time     `json:"date"`
	Content   string        `json:"content"`
	LikeCount int           `json:"likeCount"`
	Replies   []ReplyDetail `json:"replies"`
}

type ReplyDetail struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
}

// GetThreadDetail fetches a thread with its comments, each enriched with a
// like count and its replies. Comments and replies keep the store's
// ascending creation order. Any store failure aborts the whole read; no
// partial thread is ever returned.
func (s Service) GetThreadDetail(ctx context.Context, threadID string) (ThreadDetail, error) {
	t, err := s.Threads.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ThreadDetail{}, notFound("thread tidak ditemukan")
		}
		return ThreadDetail{}, err
	}

	rows, err := s.Comments.FindByThreadID(ctx, threadID)
	if err != nil {
		return ThreadDetail{}, err
	}

	comments := make([]CommentDetail, 0, len(rows))
	for _, c := range rows {
		likeCount, err := s.Likes.CountForComment(ctx, c.ID)
		if err != nil {
			return ThreadDetail{}, err
		}

		replyRows, err := s.Replies.FindByCommentID(ctx, c.ID)
		if err != nil {
			return ThreadDetail{}, err
		}
		replies := make([]ReplyDetail, 0, len(replyRows))
		for _, r := range replyRows {
			content := r.Content
			if r.IsDeleted {
				content = deletedReplyContent
			}
			replies = append(replies, ReplyDetail{
				ID:       r.ID,
				Username: r.Username,
				Date:     r.Date,
				Content:  content,
			})
		}

		content := c.Content
		if c.IsDeleted {
			content = deletedCommentContent
		}
		comments = append(comments, CommentDetail{
			ID:        c.ID,
			Username:  c.Username,
			Date:      c.Date,
			Content:   content,
			LikeCount: likeCount,
			Replies:   replies,
		})
	}

	return ThreadDetail{
		ID:       t.ID,
		Title:    t.Title,
		Body:     t.Body,
		Date:     t.Date,
		Username: t.Username,
		Comments: comments,
	}, nil
}
