// internal/handlers/handlertest/handlertest.go
// Package handlertest wires a router over the in-memory repo for tests.
package handlertest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	"github.com/maslima80/hatchy-sub001/internal/config"
	"github.com/maslima80/hatchy-sub001/internal/handlers"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/payments"
	"github.com/maslima80/hatchy-sub001/internal/printify"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

// FakePayments satisfies payments.Client without talking to Stripe.
type FakePayments struct {
	Err error
}

func (f *FakePayments) CreateCheckoutSession(context.Context, payments.CheckoutParams) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "https://checkout.test/session", nil
}

func (f *FakePayments) CreateExpressAccount(context.Context, string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "acct_test123", nil
}

func (f *FakePayments) CreateLoginLink(context.Context, string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "https://connect.test/login", nil
}

// FakePrintify satisfies printify.Client with canned listings.
type FakePrintify struct {
	Shops    []printify.Shop
	Products []printify.Product
	Err      error
}

func (f *FakePrintify) ListShops(context.Context, string) ([]printify.Shop, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Shops, nil
}

func (f *FakePrintify) ListShopProducts(context.Context, string, string) ([]printify.Product, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Products, nil
}

// Env bundles everything a handler test needs.
type Env struct {
	Mux      *chi.Mux
	Repo     repo.Repo
	Payments *FakePayments
	Printify *FakePrintify
}

func New(t *testing.T) *Env {
	t.Helper()
	r := repo.NewMemory()
	pay := &FakePayments{}
	pod := &FakePrintify{}
	cfg := config.Config{}
	cfg.Stripe.SuccessURL = "https://shop.test/success"
	cfg.Stripe.CancelURL = "https://shop.test/cancel"
	cfg.ImageKit.PrivateKey = "private_test_key"

	mux := chi.NewRouter()
	handlers.RegisterRoutes(mux, r, pay, pod, cfg)
	return &Env{Mux: mux, Repo: r, Payments: pay, Printify: pod}
}

// Login creates a user plus a session and returns the user and its session
// cookie.
func (e *Env) Login(t *testing.T, email string) (models.User, *http.Cookie) {
	t.Helper()
	ctx := context.Background()
	u, err := e.Repo.CreateUser(ctx, email, "Test User", "phc")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, hash, err := auth.NewToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, err := e.Repo.CreateSession(ctx, u.ID, hash, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return u, &http.Cookie{Name: "session", Value: token}
}
