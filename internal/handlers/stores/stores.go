// internal/handlers/stores/stores.go
package stores

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

type UpsertRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Currency string `json:"currency"`
}

func (b *UpsertRequest) validate() (repo.UpsertStoreParams, error) {
	var arg repo.UpsertStoreParams
	if b.ID != "" {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return arg, models.Validation("invalid store id")
		}
		arg.ID = id
	}
	arg.Name = strings.TrimSpace(b.Name)
	if arg.Name == "" {
		return arg, models.Validation("name is required")
	}
	arg.Slug = strings.ToLower(strings.TrimSpace(b.Slug))
	if arg.Slug == "" {
		return arg, models.Validation("slug is required")
	}
	arg.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if arg.Currency == "" {
		arg.Currency = "USD"
	}
	if len(arg.Currency) != 3 {
		return arg, models.Validation("currency must be a 3-letter code")
	}
	return arg, nil
}

// POST /stores
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	defer r.Body.Close()
	var body UpsertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	arg, err := body.validate()
	if err != nil {
		httpserver.Error(w, err)
		return
	}

	store, err := h.repo.UpsertStore(r.Context(), user.ID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"store":   store,
	})
}

// GET /stores
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	stores, err := h.repo.ListStores(r.Context(), user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stores":  stores,
	})
}

// DELETE /stores/{storeID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	if err := h.repo.DeleteStore(r.Context(), id, user.ID); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// POST /stores/{storeID}/products { "productId": "..." }
// Attaches a product to the store and eagerly creates its default price row.
func (h *Handler) AttachProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}

	defer r.Body.Close()
	var body struct {
		ProductID string `json:"productId"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	productID, err := uuid.Parse(body.ProductID)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	sp, err := h.repo.AttachProductToStore(r.Context(), user.ID, storeID, productID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	price, err := h.repo.EnsureStorePrice(r.Context(), sp.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"storeProduct": sp,
		"price":        price,
	})
}

// GET /stores/{storeID}/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	sps, err := h.repo.ListStoreProducts(r.Context(), storeID, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"storeProducts": sps,
	})
}

// PriceRequest is the boundary contract for price writes.
type PriceRequest struct {
	VariantID  string `json:"variantId,omitempty"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	Visibility string `json:"visibility"`
}

func (b *PriceRequest) validate() (repo.SetStorePriceParams, error) {
	var arg repo.SetStorePriceParams
	if b.VariantID != "" {
		id, err := uuid.Parse(b.VariantID)
		if err != nil {
			return arg, models.Validation("invalid variant id")
		}
		arg.VariantID = &id
	}
	if b.PriceCents < 0 {
		return arg, models.Validation("priceCents must not be negative")
	}
	arg.PriceCents = b.PriceCents
	arg.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if arg.Currency == "" {
		arg.Currency = "USD"
	}
	switch models.Visibility(b.Visibility) {
	case "":
		arg.Visibility = models.VisibilityVisible
	case models.VisibilityVisible, models.VisibilityHidden:
		arg.Visibility = models.Visibility(b.Visibility)
	default:
		return arg, models.Validation("visibility must be VISIBLE or HIDDEN")
	}
	return arg, nil
}

// PUT /stores/{storeID}/products/{storeProductID}/price
func (h *Handler) SetPrice(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	storeProductID, err := uuid.Parse(chi.URLParam(r, "storeProductID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store product id"})
		return
	}

	defer r.Body.Close()
	var body PriceRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	arg, err := body.validate()
	if err != nil {
		httpserver.Error(w, err)
		return
	}

	// The lazy default row exists before any explicit price write.
	if _, err := h.repo.GetStoreProductForUser(r.Context(), storeProductID, user.ID); err != nil {
		httpserver.Error(w, err)
		return
	}
	if _, err := h.repo.EnsureStorePrice(r.Context(), storeProductID); err != nil {
		httpserver.Error(w, err)
		return
	}
	price, err := h.repo.SetStorePrice(r.Context(), user.ID, storeProductID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"price":   price,
	})
}
