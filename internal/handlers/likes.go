package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/forum-api/internal/forum"
	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/platform/auth"
	"github.com/example/forum-api/internal/platform/events"
)

// ToggleLike handles PUT /threads/{thread_id}/comments/{comment_id}/likes.
// The endpoint is a pure toggle; both like and unlike answer 200.
func ToggleLike(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))
		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))

		if err := svc.ToggleLike(r.Context(), threadID, commentID, owner); err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectLikeToggled, "like_toggled", owner, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
		})

		api.Success(w, http.StatusOK, nil)
	}
}
