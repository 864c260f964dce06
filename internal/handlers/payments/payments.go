// internal/handlers/payments/payments.go
package payments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	"github.com/maslima80/hatchy-sub001/internal/config"
	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/payments"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

type Handler struct {
	repo   repo.Repo
	client payments.Client
	cfg    config.Config
}

func New(repo repo.Repo, client payments.Client, cfg config.Config) *Handler {
	return &Handler{repo: repo, client: client, cfg: cfg}
}

// writeErr maps payment errors onto statuses. Provider failures surface as
// 502 with a generic message; configuration gaps are the caller's 400.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payments.ErrNotConfigured):
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "payouts not configured"})
	case errors.Is(err, payments.ErrUpstream):
		httpserver.JSON(w, http.StatusBadGateway, map[string]string{"error": "payment provider unavailable"})
	default:
		httpserver.Error(w, err)
	}
}

// POST /payments/checkout { "storeProductId": "...", "quantity": 1 }
// Creates a hosted checkout session for an owned store product and records a
// pending order.
func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	defer r.Body.Close()
	var body struct {
		StoreProductID string `json:"storeProductId"`
		Quantity       int64  `json:"quantity"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	storeProductID, err := uuid.Parse(body.StoreProductID)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store product id"})
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	sp, err := h.repo.GetStoreProductForUser(r.Context(), storeProductID, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	product, err := h.repo.GetProductForUser(r.Context(), sp.ProductID, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	price, err := h.repo.EnsureStorePrice(r.Context(), sp.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}

	url, err := h.client.CreateCheckoutSession(r.Context(), payments.CheckoutParams{
		Name:        product.Name,
		AmountCents: price.PriceCents,
		Currency:    price.Currency,
		Quantity:    body.Quantity,
		SuccessURL:  h.cfg.Stripe.SuccessURL,
		CancelURL:   h.cfg.Stripe.CancelURL,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	order, err := h.repo.CreateOrder(r.Context(), user.ID, repo.CreateOrderParams{
		StoreID:    &sp.StoreID,
		TotalCents: price.PriceCents * body.Quantity,
		Currency:   price.Currency,
	})
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"checkoutUrl": url,
		"order":       order,
	})
}

// POST /payments/payout-account
// Creates the user's Express account on first call; later calls return the
// stored account.
func (h *Handler) CreatePayoutAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if acct, err := h.repo.GetPayoutAccount(r.Context(), user.ID); err == nil {
		httpserver.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"account": acct,
		})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		httpserver.Error(w, err)
		return
	}

	accountID, err := h.client.CreateExpressAccount(r.Context(), user.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	acct, err := h.repo.UpsertPayoutAccount(r.Context(), user.ID, accountID, false)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"account": acct,
	})
}

// POST /payments/payout-account/login-link
func (h *Handler) CreateLoginLink(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	acct, err := h.repo.GetPayoutAccount(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "payouts not configured"})
			return
		}
		httpserver.Error(w, err)
		return
	}

	url, err := h.client.CreateLoginLink(r.Context(), acct.StripeAccountID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}
