package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/forum-api/internal/store"
)

func TestCreateComment(t *testing.T) {
	svc := newService()
	th, _ := svc.CreateThread(context.Background(), store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})

	handler := CreateComment(svc, nil)
	req := setupReq(http.MethodPost, "/threads/"+th.ID+"/comments", `{"content":"sebuah komentar"}`,
		map[string]string{"thread_id": th.ID}, "user-b")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	added, ok := env.Data["addedComment"].(map[string]any)
	if !ok {
		t.Fatalf("expected addedComment object, got %v", env.Data)
	}
	if added["content"] != "sebuah komentar" {
		t.Fatalf("expected content to round-trip, got %v", added["content"])
	}
	if added["owner"] != "user-b" {
		t.Fatalf("expected owner 'user-b', got %v", added["owner"])
	}
}

func TestCreateComment_ThreadNotFound(t *testing.T) {
	handler := CreateComment(newService(), nil)
	req := setupReq(http.MethodPost, "/threads/thread-x/comments", `{"content":"halo"}`,
		map[string]string{"thread_id": "thread-x"}, "user-b")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCreateComment_MissingProperty(t *testing.T) {
	svc := newService()
	th, _ := svc.CreateThread(context.Background(), store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})

	handler := CreateComment(svc, nil)
	req := setupReq(http.MethodPost, "/threads/"+th.ID+"/comments", `{"content":""}`,
		map[string]string{"thread_id": th.ID}, "user-b")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if !strings.Contains(env.Message, "properti yang dibutuhkan tidak ada") {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestDeleteComment_OwnerOnly(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	th, _ := svc.CreateThread(ctx, store.NewThread{Title: "judul", Body: "isi", Owner: "user-a"})
	c, _ := svc.AddComment(ctx, store.NewComment{ThreadID: th.ID, Owner: "user-b", Content: "milik b"})

	handler := DeleteComment(svc, nil)
	params := map[string]string{"thread_id": th.ID, "comment_id": c.ID}

	// Non-owner: forbidden
	req := setupReq(http.MethodDelete, "/threads/"+th.ID+"/comments/"+c.ID, "", params, "user-c")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d: %s", rr.Code, rr.Body.String())
	}

	// Owner: success
	req = setupReq(http.MethodDelete, "/threads/"+th.ID+"/comments/"+c.ID, "", params, "user-b")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if env.Status != "success" {
		t.Fatalf("expected status success, got %q", env.Status)
	}
}

func TestDeleteComment_WrongThread(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	th1, _ := svc.CreateThread(ctx, store.NewThread{Title: "satu", Body: "isi", Owner: "user-a"})
	th2, _ := svc.CreateThread(ctx, store.NewThread{Title: "dua", Body: "isi", Owner: "user-a"})
	c, _ := svc.AddComment(ctx, store.NewComment{ThreadID: th1.ID, Owner: "user-b", Content: "di thread satu"})

	handler := DeleteComment(svc, nil)
	req := setupReq(http.MethodDelete, "/threads/"+th2.ID+"/comments/"+c.ID, "",
		map[string]string{"thread_id": th2.ID, "comment_id": c.ID}, "user-b")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Linkage mismatch reads as missing, never as forbidden.
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
