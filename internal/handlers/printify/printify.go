// internal/handlers/printify/printify.go
package printify

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/maslima80/hatchy-sub001/internal/auth"
	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/models"
	"github.com/maslima80/hatchy-sub001/internal/printify"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

type Handler struct {
	repo   repo.Repo
	client printify.Client
}

func New(repo repo.Repo, client printify.Client) *Handler {
	return &Handler{repo: repo, client: client}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, printify.ErrInvalidAPIKey):
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid printify api key"})
	case errors.Is(err, printify.ErrUpstream):
		httpserver.JSON(w, http.StatusBadGateway, map[string]string{"error": "printify unavailable"})
	default:
		httpserver.Error(w, err)
	}
}

// connection loads the caller's stored key, translating a missing row into
// the caller-facing "not connected" 400.
func (h *Handler) connection(w http.ResponseWriter, r *http.Request) (models.PrintifyConnection, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return models.PrintifyConnection{}, false
	}
	conn, err := h.repo.GetPrintifyConnection(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "printify not connected"})
			return models.PrintifyConnection{}, false
		}
		httpserver.Error(w, err)
		return models.PrintifyConnection{}, false
	}
	return conn, true
}

// POST /printify/connect { "apiKey": "...", "shopId": "..." }
// Validates the key by listing shops before storing it.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	defer r.Body.Close()
	var body struct {
		APIKey string `json:"apiKey"`
		ShopID string `json:"shopId"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	if err := dec.Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	body.APIKey = strings.TrimSpace(body.APIKey)
	if body.APIKey == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "apiKey is required"})
		return
	}

	shops, err := h.client.ListShops(r.Context(), body.APIKey)
	if err != nil {
		writeErr(w, err)
		return
	}
	shopID := strings.TrimSpace(body.ShopID)
	if shopID == "" && len(shops) > 0 {
		shopID = strconv.FormatInt(shops[0].ID, 10)
	}

	conn, err := h.repo.UpsertPrintifyConnection(r.Context(), user.ID, body.APIKey, shopID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"connection": conn,
		"shops":      shops,
	})
}

// GET /printify/shops
func (h *Handler) ListShops(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.connection(w, r)
	if !ok {
		return
	}
	shops, err := h.client.ListShops(r.Context(), conn.APIKey)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"shops":   shops,
	})
}

// GET /printify/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.connection(w, r)
	if !ok {
		return
	}
	if conn.ShopID == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "no printify shop selected"})
		return
	}
	products, err := h.client.ListShopProducts(r.Context(), conn.APIKey, conn.ShopID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
	})
}

// POST /printify/import { "productId": "..." }
// Imports one listing from the connected shop as an owned product with its
// enabled variants. Re-importing is a no-op.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	conn, ok := h.connection(w, r)
	if !ok {
		return
	}
	if conn.ShopID == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "no printify shop selected"})
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
	if strings.TrimSpace(body.ProductID) == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "productId is required"})
		return
	}

	listings, err := h.client.ListShopProducts(r.Context(), conn.APIKey, conn.ShopID)
	if err != nil {
		writeErr(w, err)
		return
	}
	var listing *printify.Product
	for i := range listings {
		if listings[i].ID == body.ProductID {
			listing = &listings[i]
			break
		}
	}
	if listing == nil {
		httpserver.JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	arg := repo.ImportProductParams{
		PrintifyProductID: listing.ID,
		Name:              listing.Title,
		Description:       listing.Description,
	}
	pos := int32(0)
	for _, v := range listing.Variants {
		if !v.IsEnabled {
			continue
		}
		arg.Variants = append(arg.Variants, repo.UpsertVariantParams{
			Name:       v.Title,
			SKU:        v.SKU,
			PriceCents: v.Price,
			Position:   pos,
		})
		pos++
	}

	product, created, err := h.repo.ImportProduct(r.Context(), user.ID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpserver.JSON(w, status, map[string]any{
		"success": true,
		"created": created,
		"product": product,
	})
}
