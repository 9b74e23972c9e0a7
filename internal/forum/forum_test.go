package forum

import (
	"context"
	"errors"
	"testing"

	"github.com/example/forum-api/internal/store"
)

func newService() Service {
	users := store.NewInMemoryUserStore()
	return Service{
		Threads:  store.NewInMemoryThreadStore(users),
		Comments: store.NewInMemoryCommentStore(users),
		Replies:  store.NewInMemoryReplyStore(users),
		Likes:    store.NewInMemoryLikeStore(),
	}
}

func mustThread(t *testing.T, s Service, owner string) store.Thread {
	t.Helper()
	th, err := s.CreateThread(context.Background(), store.NewThread{Title: "judul", Body: "isi", Owner: owner})
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}
	return th
}

func mustComment(t *testing.T, s Service, threadID, owner, content string) store.Comment {
	t.Helper()
	c, err := s.AddComment(context.Background(), store.NewComment{ThreadID: threadID, Owner: owner, Content: content})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	return c
}

func TestGetThreadDetail_NotFound(t *testing.T) {
	s := newService()
	_, err := s.GetThreadDetail(context.Background(), "thread-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetThreadDetail_AggregatesLikesAndReplies(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "hello")

	r, err := s.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c.ID, Owner: "user-b", Content: "a reply"})
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}
	if err := s.DeleteReply(ctx, th.ID, c.ID, r.ID, "user-b"); err != nil {
		t.Fatalf("delete reply: %v", err)
	}

	for _, owner := range []string{"user-b", "user-c"} {
		if err := s.ToggleLike(ctx, th.ID, c.ID, owner); err != nil {
			t.Fatalf("toggle like (%s): %v", owner, err)
		}
	}

	d, err := s.GetThreadDetail(ctx, th.ID)
	if err != nil {
		t.Fatalf("get thread detail: %v", err)
	}
	if len(d.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(d.Comments))
	}
	got := d.Comments[0]
	if got.ID != c.ID || got.Content != "hello" {
		t.Fatalf("unexpected comment: %+v", got)
	}
	if got.LikeCount != 2 {
		t.Fatalf("expected likeCount 2, got %d", got.LikeCount)
	}
	if len(got.Replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(got.Replies))
	}
	if got.Replies[0].ID != r.ID {
		t.Fatalf("expected reply %s, got %s", r.ID, got.Replies[0].ID)
	}
	if got.Replies[0].Content != "**balasan telah dihapus**" {
		t.Fatalf("expected deleted reply placeholder, got %q", got.Replies[0].Content)
	}
}

func TestGetThreadDetail_MasksDeletedComment(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "hello")
	r, err := s.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c.ID, Owner: "user-b", Content: "still here"})
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}

	if err := s.DeleteComment(ctx, th.ID, c.ID, "user-a"); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	d, err := s.GetThreadDetail(ctx, th.ID)
	if err != nil {
		t.Fatalf("get thread detail: %v", err)
	}
	if d.Comments[0].Content != "**komentar telah dihapus**" {
		t.Fatalf("expected deleted comment placeholder, got %q", d.Comments[0].Content)
	}
	// the parent's deletion leaves the reply untouched
	if d.Comments[0].Replies[0].ID != r.ID || d.Comments[0].Replies[0].Content != "still here" {
		t.Fatalf("unexpected reply after parent deletion: %+v", d.Comments[0].Replies[0])
	}
}

func TestGetThreadDetail_CommentsOrderedOldestFirst(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c1 := mustComment(t, s, th.ID, "user-a", "first")
	c2 := mustComment(t, s, th.ID, "user-b", "second")
	c3 := mustComment(t, s, th.ID, "user-c", "third")

	d, err := s.GetThreadDetail(ctx, th.ID)
	if err != nil {
		t.Fatalf("get thread detail: %v", err)
	}
	want := []string{c1.ID, c2.ID, c3.ID}
	if len(d.Comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(d.Comments))
	}
	for i, id := range want {
		if d.Comments[i].ID != id {
			t.Fatalf("comment %d: expected %s, got %s", i, id, d.Comments[i].ID)
		}
	}
}

func TestGetThreadDetail_RepliesOrderedOldestFirst(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "root")

	var want []string
	for _, content := range []string{"one", "two", "three"} {
		r, err := s.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c.ID, Owner: "user-b", Content: content})
		if err != nil {
			t.Fatalf("add reply: %v", err)
		}
		want = append(want, r.ID)
	}

	d, err := s.GetThreadDetail(ctx, th.ID)
	if err != nil {
		t.Fatalf("get thread detail: %v", err)
	}
	got := d.Comments[0].Replies
	if len(got) != len(want) {
		t.Fatalf("expected %d replies, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("reply %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestAddComment_ThreadMissing(t *testing.T) {
	s := newService()
	_, err := s.AddComment(context.Background(), store.NewComment{ThreadID: "thread-x", Owner: "user-a", Content: "hi"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddReply_CommentMissing(t *testing.T) {
	s := newService()
	th := mustThread(t, s, "user-a")
	_, err := s.AddReply(context.Background(), store.NewReply{ThreadID: th.ID, CommentID: "comment-x", Owner: "user-a", Content: "hi"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteComment_NonOwnerForbidden(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "hello")

	err := s.DeleteComment(ctx, th.ID, c.ID, "user-b")
	if !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// flag unchanged: content still readable
	d, err := s.GetThreadDetail(ctx, th.ID)
	if err != nil {
		t.Fatalf("get thread detail: %v", err)
	}
	if d.Comments[0].Content != "hello" {
		t.Fatalf("expected content unchanged, got %q", d.Comments[0].Content)
	}
}

func TestDeleteComment_WrongThreadNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	other := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "hello")

	// unavailable reads as missing, never as forbidden
	err := s.DeleteComment(ctx, other.ID, c.ID, "user-a")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected not found rather than forbidden, got %v", err)
	}
}

func TestDeleteComment_AlreadyDeletedNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "hello")
	if err := s.DeleteComment(ctx, th.ID, c.ID, "user-a"); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	err := s.DeleteComment(ctx, th.ID, c.ID, "user-a")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteReply_NonOwnerForbidden(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "root")
	r, err := s.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c.ID, Owner: "user-b", Content: "mine"})
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}

	if err := s.DeleteReply(ctx, th.ID, c.ID, r.ID, "user-c"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteReply_WrongCommentNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c1 := mustComment(t, s, th.ID, "user-a", "one")
	c2 := mustComment(t, s, th.ID, "user-a", "two")
	r, err := s.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c1.ID, Owner: "user-b", Content: "mine"})
	if err != nil {
		t.Fatalf("add reply: %v", err)
	}

	if err := s.DeleteReply(ctx, th.ID, c2.ID, r.ID, "user-b"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleLike_OnceThenTwice(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "likeable")

	if err := s.ToggleLike(ctx, th.ID, c.ID, "user-b"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if n, _ := s.Likes.CountForComment(ctx, c.ID); n != 1 {
		t.Fatalf("expected 1 like after first toggle, got %d", n)
	}

	if err := s.ToggleLike(ctx, th.ID, c.ID, "user-b"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if n, _ := s.Likes.CountForComment(ctx, c.ID); n != 0 {
		t.Fatalf("expected 0 likes after second toggle, got %d", n)
	}
}

func TestToggleLike_CountsAcrossUsers(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "popular")

	for _, owner := range []string{"user-a", "user-b", "user-c"} {
		if err := s.ToggleLike(ctx, th.ID, c.ID, owner); err != nil {
			t.Fatalf("toggle (%s): %v", owner, err)
		}
	}
	if n, _ := s.Likes.CountForComment(ctx, c.ID); n != 3 {
		t.Fatalf("expected 3 likes, got %d", n)
	}
}

func TestToggleLike_WrongThreadNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	other := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "likeable")

	if err := s.ToggleLike(ctx, other.ID, c.ID, "user-b"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// no like row was written
	if n, _ := s.Likes.CountForComment(ctx, c.ID); n != 0 {
		t.Fatalf("expected 0 likes, got %d", n)
	}
}

func TestToggleLike_DeletedCommentNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()

	th := mustThread(t, s, "user-a")
	c := mustComment(t, s, th.ID, "user-a", "gone soon")
	if err := s.DeleteComment(ctx, th.ID, c.ID, "user-a"); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	if err := s.ToggleLike(ctx, th.ID, c.ID, "user-b"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
