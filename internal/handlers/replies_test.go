package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/forum-api/internal/store"
)

func TestCreateReply(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	th, _ := svc.CreateThread(ctx, store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})
	c, _ := svc.AddComment(ctx, store.NewComment{ThreadID: th.ID, Owner: "user-b", Content: "komentar"})

	handler := CreateReply(svc, nil)
	req := setupReq(http.MethodPost, "/threads/"+th.ID+"/comments/"+c.ID+"/replies", `{"content":"sebuah balasan"}`,
		map[string]string{"thread_id": th.ID, "comment_id": c.ID}, "user-c")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	added, ok := env.Data["addedReply"].(map[string]any)
	if !ok {
		t.Fatalf("expected addedReply object, got %v", env.Data)
	}
	if added["content"] != "sebuah balasan" {
		t.Fatalf("expected content to round-trip, got %v", added["content"])
	}
	if added["owner"] != "user-c" {
		t.Fatalf("expected owner 'user-c', got %v", added["owner"])
	}
}

func TestCreateReply_CommentNotFound(t *testing.T) {
	svc := newService()
	th, _ := svc.CreateThread(context.Background(), store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})

	handler := CreateReply(svc, nil)
	req := setupReq(http.MethodPost, "/threads/"+th.ID+"/comments/comment-x/replies", `{"content":"halo"}`,
		map[string]string{"thread_id": th.ID, "comment_id": "comment-x"}, "user-c")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Message != "comment tidak ditemukan" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestDeleteReply_OwnerOnly(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	th, _ := svc.CreateThread(ctx, store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})
	c, _ := svc.AddComment(ctx, store.NewComment{ThreadID: th.ID, Owner: "user-b", Content: "komentar"})
	rep, _ := svc.AddReply(ctx, store.NewReply{ThreadID: th.ID, CommentID: c.ID, Owner: "user-c", Content: "balasan"})

	handler := DeleteReply(svc, nil)
	params := map[string]string{"thread_id": th.ID, "comment_id": c.ID, "reply_id": rep.ID}

	// Non-owner: forbidden
	req := setupReq(http.MethodDelete, "/threads/"+th.ID+"/comments/"+c.ID+"/replies/"+rep.ID, "", params, "user-b")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d: %s", rr.Code, rr.Body.String())
	}

	// Owner: success
	req = setupReq(http.MethodDelete, "/threads/"+th.ID+"/comments/"+c.ID+"/replies/"+rep.ID, "", params, "user-c")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", rr.Code, rr.Body.String())
	}

	// Deleting it again reads as missing.
	req = setupReq(http.MethodDelete, "/threads/"+th.ID+"/comments/"+c.ID+"/replies/"+rep.ID, "", params, "user-c")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted reply, got %d", rr.Code)
	}
}
