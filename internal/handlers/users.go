package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/forum-api/internal/platform/api"
	"github.com/example/forum-api/internal/platform/events"
	"github.com/example/forum-api/internal/store"
)

const maxUsernameLen = 50

var usernamePattern = regexp.MustCompile(`^\w+$`)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

type addedUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Register handles POST /users.
func Register(us store.UserStore, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req, "tidak dapat membuat user baru karena tipe data tidak sesuai") {
			return
		}
		username := strings.TrimSpace(req.Username)
		if username == "" || req.Password == "" || strings.TrimSpace(req.Fullname) == "" {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat user baru karena properti yang dibutuhkan tidak ada")
			return
		}
		if utf8.RuneCountInString(username) > maxUsernameLen {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat user baru karena karakter username melebihi batas limit")
			return
		}
		if !usernamePattern.MatchString(username) {
			api.Fail(w, http.StatusBadRequest, "tidak dapat membuat user baru karena username mengandung karakter terlarang")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Internal(w)
			return
		}

		u, err := us.Create(r.Context(), store.CreateUserParams{
			Username:     username,
			Fullname:     req.Fullname,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				api.Fail(w, http.StatusBadRequest, "username tidak tersedia")
				return
			}
			api.Internal(w)
			return
		}

		pub.Publish(events.SubjectUserRegistered, "user_registered", u.ID, map[string]any{
			"username": u.Username,
		})

		api.Success(w, http.StatusCreated, map[string]any{
			"addedUser": addedUserResponse{ID: u.ID, Username: u.Username, Fullname: u.Fullname},
		})
	}
}
