package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/pkg/logger"
)

// DefaultMaxBodyBytes caps JSON request bodies unless a handler sets its own limit.
const DefaultMaxBodyBytes = 1 << 20

// BaseHandler carries the response helpers shared by every resource handler.
type BaseHandler struct {
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// NewBaseHandler falls back to the process logger, then slog.Default, when lg is nil.
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &BaseHandler{Logger: lg, MaxBodyBytes: DefaultMaxBodyBytes}
}

type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// DecodeJSON reads at most MaxBodyBytes of the request body into dst. On failure it has
// already answered 400.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Logger.Debug("undecodable request body", "path", r.URL.Path, "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Debug("http error", "status", status, "message", message)
	h.WriteJSON(w, status, ErrorResponse{Code: status, Error: message})
}

// HandleServiceError maps service errors to responses. Internal errors are logged with
// their cause and reported with a generic message.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.Type == internal.ErrorTypeInternal {
		h.Logger.Error("internal error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
}

// ExtractTokenFromHeader returns the bearer credential, or "" when the header is absent
// or uses another scheme. The scheme name is matched case-insensitively.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
