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

type createReplyRequest struct {
	Content string `json:"content"`
}

type addedReplyResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// CreateReply handles POST /threads/{thread_id}/comments/{comment_id}/replies
func CreateReply(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))
		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))

		var req createReplyRequest
		if !decodeJSON(w, r, &req, "tidak dapat membuat reply baru karena tipe data tidak sesuai") {
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat reply baru karena properti yang dibutuhkan tidak ada")
			return
		}

		rep, err := svc.AddReply(r.Context(), store.NewReply{
			ThreadID:  threadID,
			CommentID: commentID,
			Owner:     owner,
			Content:   req.Content,
		})
		if err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectReplyCreated, "reply_created", owner, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
			"reply_id":   rep.ID,
		})

		api.Success(w, http.StatusCreated, map[string]any{
			"addedReply": addedReplyResponse{ID: rep.ID, Content: rep.Content, Owner: rep.Owner},
		})
	}
}

// DeleteReply handles DELETE /threads/{thread_id}/comments/{comment_id}/replies/{reply_id}
func DeleteReply(svc forum.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.UserIDFromContext(r.Context())
		if !ok || owner == "" {
			api.Fail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		threadID := strings.TrimSpace(chi.URLParam(r, "thread_id"))
		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))
		replyID := strings.TrimSpace(chi.URLParam(r, "reply_id"))

		if err := svc.DeleteReply(r.Context(), threadID, commentID, replyID, owner); err != nil {
			writeUseCaseError(w, err)
			return
		}

		pub.Publish(events.SubjectReplyDeleted, "reply_deleted", owner, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
			"reply_id":   replyID,
		})

		api.Success(w, http.StatusOK, nil)
	}
}
