package photo

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/visitor-management/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	store *Store
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		store:       store,
	}
}

// Serve handles GET /uploads/{filename}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, info, err := h.store.Open(filename)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "file not found")
		return
	}
	defer f.Close()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
