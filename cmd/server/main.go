// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	mux_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	"github.com/maslima80/hatchy-sub001/internal/config"
	"github.com/maslima80/hatchy-sub001/internal/handlers"
	"github.com/maslima80/hatchy-sub001/internal/middleware"
	"github.com/maslima80/hatchy-sub001/internal/payments"
	"github.com/maslima80/hatchy-sub001/internal/printify"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Connect to Postgres; fall back to memory mode without one ---
	ctx := context.Background()
	r := connectRepo(ctx, cfg)

	// --- Integration clients ---
	pay := payments.NewStripe(cfg.Stripe.SecretKey)
	pod := printify.NewClient(cfg.Printify.BaseURL)

	// --- Router ---
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(mux_middleware.Logger)

	// --- CORS middleware ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Frontend.URL, "http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by browsers
	}))

	// Local auth routes
	mux.Post("/auth/signup", auth.SignupHandler(r))
	mux.Post("/auth/login", auth.LoginHandler(r))
	mux.Post("/auth/logout", auth.LogoutHandler(r))
	mux.With(middleware.RequireAuth(r)).Get("/auth/me", auth.ProfileHandler())

	// Resource routes
	handlers.RegisterRoutes(mux, r, pay, pod, cfg)

	// Health root
	mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	// --- Start server ---
	addr := "127.0.0.1:8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Printf("listening on %s (BASE_URL=%s)", addr, cfg.BaseURL)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func connectRepo(ctx context.Context, cfg config.Config) repo.Repo {
	if cfg.Database.URL == "" {
		slog.Warn("no database configured, running in memory mode")
		return repo.NewMemory()
	}
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}
	if err := repo.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("db schema error: %v", err)
	}
	return repo.New(pool)
}
