package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/platform/events"
	"github.com/example/forum-api/internal/store"
	"github.com/example/forum-api/internal/tokens"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login handles POST /authentications: verifies credentials and hands out
// an access/refresh token pair. Only the refresh token's hash is persisted.
func Login(us store.UserStore, as store.AuthenticationStore, ts tokens.Service, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req, "harus mengirimkan username dan password") {
			return
		}
		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			api.Fail(w, http.StatusBadRequest, "harus mengirimkan username dan password")
			return
		}

		row, err := us.FindByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.Fail(w, http.StatusBadRequest, "username tidak ditemukan")
				return
			}
			api.Internal(w)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)) != nil {
			api.Fail(w, http.StatusUnauthorized, "kredensial yang Anda masukkan salah")
			return
		}

		now := time.Now().UTC()
		accessToken, _, err := ts.NewAccessToken(row.User.ID, now)
		if err != nil {
			api.Internal(w)
			return
		}
		refreshToken, refreshHash, err := tokens.NewRefreshToken()
		if err != nil {
			api.Internal(w)
			return
		}
		if err := as.Save(r.Context(), store.RefreshSession{
			TokenHash: refreshHash,
			UserID:    row.User.ID,
			ExpiresAt: now.Add(ts.RefreshTokenTTL),
		}); err != nil {
			api.Internal(w)
			return
		}

		pub.Publish(events.SubjectUserLoggedIn, "user_logged_in", row.User.ID, map[string]any{
			"username": row.User.Username,
		})

		api.Success(w, http.StatusCreated, map[string]any{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		})
	}
}

// RefreshToken handles PUT /authentications: exchanges a live refresh token
// for a fresh access token. The refresh token itself is left untouched.
func RefreshToken(as store.AuthenticationStore, ts tokens.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeJSON(w, r, &req, "harus mengirimkan token refresh") {
			return
		}
		if strings.TrimSpace(req.RefreshToken) == "" {
			api.Fail(w, http.StatusBadRequest, "harus mengirimkan token refresh")
			return
		}

		sess, err := as.FindByTokenHash(r.Context(), tokens.HashRefreshToken(req.RefreshToken))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.Fail(w, http.StatusBadRequest, "refresh token tidak valid")
				return
			}
			api.Internal(w)
			return
		}
		now := time.Now().UTC()
		if now.After(sess.ExpiresAt) {
			api.Fail(w, http.StatusBadRequest, "refresh token tidak valid")
			return
		}

		accessToken, _, err := ts.NewAccessToken(sess.UserID, now)
		if err != nil {
			api.Internal(w)
			return
		}

		api.Success(w, http.StatusOK, map[string]any{
			"accessToken": accessToken,
		})
	}
}

// Logout handles DELETE /authentications: revokes a refresh token.
func Logout(as store.AuthenticationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeJSON(w, r, &req, "harus mengirimkan token refresh") {
			return
		}
		if strings.TrimSpace(req.RefreshToken) == "" {
			api.Fail(w, http.StatusBadRequest, "harus mengirimkan token refresh")
			return
		}

		if err := as.DeleteByTokenHash(r.Context(), tokens.HashRefreshToken(req.RefreshToken)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.Fail(w, http.StatusBadRequest, "refresh token tidak ditemukan di database")
				return
			}
			api.Internal(w)
			return
		}

		api.Success(w, http.StatusOK, nil)
	}
}
