package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/example/forum-api/internal/forum"
	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/platform/auth"
	"github.com/example/forum-api/internal/platform/events"
	"github.com/example/forum-api/internal/store"
)

const maxThreadTitleLen = 50

type createThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type addedThreadResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// CreateThread handles POST /threads
func CreateThread(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}

		var req createThreadRequest
		if !decodeJSON(w, r, &req, "tidak dapat membuat thread baru karena tipe data tidak sesuai") {
			return
		}
		title := strings.TrimSpace(req.Title)
		if title == "" || strings.TrimSpace(req.Body) == "" {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat thread baru karena properti yang dibutuhkan tidak ada")
			return
		}
		if utf8.RuneCountInString(title) > maxThreadTitleLen {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat thread baru karena karakter title melebihi batas limit")
			return
		}

		t, err := svc.CreateThread(r.Context(), store.NewThread{Title: title, Body: req.Body, Owner: owner})
		if err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectThreadCreated, "thread_created", owner, map[string]any{
			"thread_id": t.ID,
		})

		api.Success(w, http.StatusCreated, map[string]any{
			"addedThread": addedThreadResponse{ID: t.ID, Title: t.Title, Owner: t.Owner},
		})
	}
}

// GetThread handles GET /threads/{thread_id}
func GetThread(svc forum.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))
		if threadID == "" {
			api.Fail(w, http.StatusBadRequest, "thread_id is required")
			return
		}

		detail, err := svc.GetThreadDetail(r.Context(), threadID)
		if err != nil {
			writeUseCaseError(w, err)
			return
		}
		api.Success(w, http.StatusOK, map[string]any{"thread": detail})
	}
}
