// internal/handlers/tags/tags.go
package tags

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
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (b *UpsertRequest) validate() (repo.UpsertNameParams, error) {
	var arg repo.UpsertNameParams
	if b.ID != "" {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return arg, models.Validation("invalid tag id")
		}
		arg.ID = id
	}
	arg.Name = strings.TrimSpace(b.Name)
	if arg.Name == "" {
		return arg, models.Validation("name is required")
	}
	return arg, nil
}

// POST /tags
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

	tag, err := h.repo.UpsertTag(r.Context(), user.ID, arg)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tag":     tag,
	})
}

// GET /tags
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	tags, err := h.repo.ListTags(r.Context(), user.ID)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tags":    tags,
	})
}

// DELETE /tags/{tagID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tag id"})
		return
	}
	if err := h.repo.DeleteTag(r.Context(), id, user.ID); err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"success": true})
}
