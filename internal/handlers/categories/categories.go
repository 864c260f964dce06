// internal/handlers/categories/categories.go
package categories

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

// UpsertRequest is the inline create/rename contract.
type UpsertRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (b *UpsertRequest) validate() (repo.UpsertNameParams, error) {
	var arg repo.UpsertNameParams
	if b.ID != "" {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return arg, models.Validation("invalid category id")
		}
		arg.ID = id
	}
	arg.Name = strings.TrimSpace(b.Name)
	if arg.Name == "" {
		return arg, models.Validation("name is required")
	}
	return arg, nil
}

// POST /categories
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

	category, err := h.repo.UpsertCategory(r.Context(), user.ID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"category": category,
	})
}

// GET /categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	categories, err := h.repo.ListCategories(r.Context(), user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// DELETE /categories/{categoryID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), id, user.ID); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
}
