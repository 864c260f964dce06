// internal/handlers/products/products.go
package products

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

func errInvalid(msg string) error { return models.Validation("%s", msg) }

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

// UpsertRequest is the boundary contract for product writes. There is no
// owner field on purpose: the owner is always the authenticated caller, and
// any ownerId key in the payload is dropped during decoding.
type UpsertRequest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CategoryIDs []string `json:"categoryIds"`
	TagIDs      []string `json:"tagIds"`
}

func (b *UpsertRequest) validate() (repo.UpsertProductParams, error) {
	var arg repo.UpsertProductParams
	if b.ID != "" {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return arg, errInvalid("invalid product id")
		}
		arg.ID = id
	}
	arg.Name = strings.TrimSpace(b.Name)
	if arg.Name == "" {
		return arg, errInvalid("name is required")
	}
	arg.Description = strings.TrimSpace(b.Description)
	var err error
	if arg.CategoryIDs, err = parseIDs(b.CategoryIDs); err != nil {
		return arg, errInvalid("invalid category id")
	}
	if arg.TagIDs, err = parseIDs(b.TagIDs); err != nil {
		return arg, errInvalid("invalid tag id")
	}
	return arg, nil
}

// POST /products
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

	product, err := h.repo.UpsertProduct(r.Context(), user.ID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

// GET /products
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	products, err := h.repo.ListProducts(r.Context(), user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
	})
}

// GET /products/{productID}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	product, err := h.repo.GetProductForUser(r.Context(), id, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	variants, err := h.repo.ListVariants(r.Context(), id, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	categoryIDs, err := h.repo.ListProductCategoryIDs(r.Context(), id, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	tagIDs, err := h.repo.ListProductTagIDs(r.Context(), id, user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"product":     product,
		"variants":    variants,
		"categoryIds": categoryIDs,
		"tagIds":      tagIDs,
	})
}

// DELETE /products/{productID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	if err := h.repo.DeleteProduct(r.Context(), id, user.ID); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// VariantRequest is the boundary contract for variant writes.
type VariantRequest struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"priceCents"`
	Position   int32  `json:"position"`
}

func (b *VariantRequest) validate() (repo.UpsertVariantParams, error) {
	var arg repo.UpsertVariantParams
	if b.ID != "" {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return arg, errInvalid("invalid variant id")
		}
		arg.ID = id
	}
	arg.Name = strings.TrimSpace(b.Name)
	if arg.Name == "" {
		return arg, errInvalid("name is required")
	}
	if b.PriceCents < 0 {
		return arg, errInvalid("priceCents must not be negative")
	}
	arg.SKU = strings.TrimSpace(b.SKU)
	arg.PriceCents = b.PriceCents
	arg.Position = b.Position
	return arg, nil
}

// POST /products/{productID}/variants
func (h *Handler) UpsertVariant(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	defer r.Body.Close()
	var body VariantRequest
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

	variant, err := h.repo.UpsertVariant(r.Context(), user.ID, productID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"variant": variant,
	})
}

// DELETE /products/{productID}/variants/{variantID}
func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid variant id"})
		return
	}
	if err := h.repo.DeleteVariant(r.Context(), user.ID, productID, variantID); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func parseIDs(in []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(in))
	for _, s := range in {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
