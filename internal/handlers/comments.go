package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/forum-api/internal/forum"
	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/platform/auth"
	"github.com/example/forum-api/internal/platform/events"
	"github.com/example/forum-api/internal/store"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

type addedCommentResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// CreateComment handles POST /threads/{thread_id}/comments
func CreateComment(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))

		var req createCommentRequest
		if !decodeJSON(w, r, &req, "tidak dapat membuat comment baru karena tipe data tidak sesuai") {
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat comment baru karena properti yang dibutuhkan tidak ada")
			return
		}

		c, err := svc.AddComment(r.Context(), store.NewComment{ThreadID: threadID, Owner: owner, Content: req.Content})
		if err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectCommentCreated, "comment_created", owner, map[string]any{
			"thread_id":  threadID,
			"comment_id": c.ID,
		})

		api.Success(w, http.StatusCreated, map[string]any{
			"addedComment": addedCommentResponse{ID: c.ID, Content: c.Content, Owner: c.Owner},
		})
	}
}

// DeleteComment handles DELETE /threads/{thread_id}/comments/{comment_id}
func DeleteComment(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))
		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))

		if err := svc.DeleteComment(r.Context(), threadID, commentID, owner); err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectCommentDeleted, "comment_deleted", owner, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
		})

		api.Success(w, http.StatusOK, nil)
	}
}
