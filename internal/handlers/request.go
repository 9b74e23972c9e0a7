// Package handlers exposes the HTTP surface of the forum as chi handler
// closures over the use-case service and store ports.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/forum-api/internal/forum"
	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/store"
)

// decodeJSON decodes a bounded JSON body. On failure it writes a 400 with
// the endpoint's type-mismatch message and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, failMsg string) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		api.Fail(w, http.StatusBadRequest, failMsg)
		return false
	}
	return true
}

// writeUseCaseError maps the use-case error taxonomy onto the response
// envelope. Invariant violations and unknown errors become plain 500s.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var fe *forum.Error
	if errors.As(err, &fe) {
		switch {
		case errors.Is(fe.Kind, store.ErrNotFound):
			api.Fail(w, http.StatusNotFound, fe.Message)
			return
		case errors.Is(fe.Kind, store.ErrForbidden):
			api.Fail(w, http.StatusForbidden, fe.Message)
			return
		}
	}
	api.Internal(w)
}
