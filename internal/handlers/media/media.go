// internal/handlers/media/media.go
package media

import (
	"net/http"
	"time"

	"github.com/maslima80/hatchy-sub001/internal/config"
	httpserver "github.com/maslima80/hatchy-sub001/internal/http"
	"github.com/maslima80/hatchy-sub001/internal/imagekit"
)

type Handler struct {
	cfg config.Config
}

func New(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// GET /media/auth
// Returns short-lived signed upload parameters for direct browser uploads.
func (h *Handler) UploadAuth(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ImageKit.PrivateKey == "" {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "media uploads not configured"})
		return
	}
	params := imagekit.NewUploadAuth(h.cfg.ImageKit.PrivateKey, time.Now(), imagekit.DefaultTTL)
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"token":     params.Token,
		"expire":    params.Expire,
		"signature": params.Signature,
	})
}
