// internal/repo/users.go
package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// ---------------- Users & Sessions ----------------

const userCols = `id, email, name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	return u, mapErr(err)
}

func (p *pgRepo) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	slog.DebugContext(ctx, "CreateUser", "email", email)
	row := p.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userCols,
		uuid.New(), email, name, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		slog.ErrorContext(ctx, "CreateUser failed", "err", err)
	}
	return u, err
}

func (p *pgRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (p *pgRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (p *pgRepo) CreateSession(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (models.Session, error) {
	slog.DebugContext(ctx, "CreateSession", "user_id", userID.String())
	var s models.Session
	err := p.pool.QueryRow(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, expires_at, created_at`,
		uuid.New(), tokenHash, userID, expiresAt).
		Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	return s, mapErr(err)
}

func (p *pgRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	var s models.Session
	err := p.pool.QueryRow(ctx,
		`SELECT id, user_id, expires_at, created_at
		 FROM sessions
		 WHERE token_hash = $1 AND expires_at > now()`,
		tokenHash).
		Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	return s, mapErr(err)
}

func (p *pgRepo) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return mapErr(err)
}
