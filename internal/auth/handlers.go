// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

// SignupHandler registers a local user and opens a session.
// POST /auth/signup { "email": "...", "name": "...", "password": "..." }
func SignupHandler(r repo.Repo) http.HandlerFunc {
	type bodyT struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()
		var b bodyT
		dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)) // 1MB cap
		if err := dec.Decode(&b); err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
		b.Email = strings.TrimSpace(strings.ToLower(b.Email))
		if b.Email == "" || !strings.Contains(b.Email, "@") {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "valid email is required"})
			return
		}
		if len(b.Password) < 8 {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
			return
		}

		phc, err := HashPassword(b.Password, defaultArgonParams())
		if err != nil {
			httpserver.Error(w, err)
			return
		}
		u, err := r.CreateUser(req.Context(), b.Email, strings.TrimSpace(b.Name), phc)
		if err != nil {
			if errors.Is(err, models.ErrConflict) {
				httpserver.JSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
				return
			}
			httpserver.Error(w, err)
			return
		}
		if err := openSession(w, req, r, u.ID); err != nil {
			httpserver.Error(w, err)
			return
		}
		httpserver.JSON(w, http.StatusCreated, map[string]any{"success": true, "user": u})
	}
}

// LoginHandler verifies credentials and opens a session.
// POST /auth/login { "email": "...", "password": "..." }
func LoginHandler(r repo.Repo) http.HandlerFunc {
	type bodyT struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()
		var b bodyT
		dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)) // 1MB cap
		if err := dec.Decode(&b); err != nil {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
		u, err := r.GetUserByEmail(req.Context(), strings.TrimSpace(strings.ToLower(b.Email)))
		if err != nil {
			// Same response for unknown email and wrong password.
			httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		ok, err := VerifyPassword(b.Password, u.PasswordHash)
		if err != nil || !ok {
			httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		if err := openSession(w, req, r, u.ID); err != nil {
			httpserver.Error(w, err)
			return
		}
		httpserver.JSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
	}
}

// LogoutHandler destroys the current session.
func LogoutHandler(r repo.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if token := ReadSessionToken(req); token != "" {
			_ = r.DeleteSessionByTokenHash(req.Context(), HashToken(token))
		}
		ClearSessionCookie(w)
		httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// ProfileHandler returns the authenticated user. Expects RequireAuth upstream.
func ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		u, ok := UserFromContext(req.Context())
		if !ok {
			httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		httpserver.JSON(w, http.StatusOK, map[string]any{"success": true, "user": u})
	}
}

func openSession(w http.ResponseWriter, req *http.Request, r repo.Repo, userID uuid.UUID) error {
	token, hash, err := NewToken()
	if err != nil {
		return err
	}
	s, err := r.CreateSession(req.Context(), userID, hash, time.Now().Add(SessionTTL))
	if err != nil {
		return err
	}
	SetSessionCookie(w, token, s.ExpiresAt)
	return nil
}
