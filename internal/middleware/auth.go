// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

// RequireAuth authenticates using the session cookie, resolves the session
// row by token hash, loads the user, and injects both into the context.
// Anything short of a valid unexpired session is a 401 before any handler
// runs, so unauthenticated requests cannot cause persistence side effects.
func RequireAuth(r repo.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := auth.ReadSessionToken(req)
			if token == "" {
				httpserver.Error(w, models.ErrUnauthorized)
				return
			}
			sess, err := r.GetSessionByTokenHash(req.Context(), auth.HashToken(token))
			if err != nil {
				httpserver.Error(w, models.ErrUnauthorized)
				return
			}
			user, err := r.GetUserByID(req.Context(), sess.UserID)
			if err != nil {
				httpserver.Error(w, models.ErrUnauthorized)
				return
			}

			ctx := auth.WithSession(req.Context(), &sess)
			ctx = auth.WithUser(ctx, &user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
