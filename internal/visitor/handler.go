package visitor

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/transport"
	"github.com/frahmantamala/visitor-management/pkg/logger"
	"github.com/go-chi/chi"
)

// defaultMaxBodyBytes leaves room for an inline photo.
const defaultMaxBodyBytes = 10 << 20

type ServiceAPI interface {
	CreateVisitor(ctx context.Context, dto CreateVisitorDTO) (*Visitor, error)
	ListVisitors(ctx context.Context) ([]Summary, error)
	ApproveVisitor(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	base := transport.NewBaseHandler(logger.LoggerWrapper())
	base.MaxBodyBytes = maxBodyBytes
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var dto CreateVisitorDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	visitor, err := h.Service.CreateVisitor(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreateVisitorResponse{
		Message: "Visitor added successfully",
		ID:      visitor.ID,
	})
}

func (h *Handler) ListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.Service.ListVisitors(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, visitors)
}

func (h *Handler) ApproveVisitor(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.HandleServiceError(w, internal.NewValidationError("invalid visitor ID", internal.ErrCodeInvalidVisitorID))
		return
	}

	if err := h.Service.ApproveVisitor(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Visitor approved"})
}
