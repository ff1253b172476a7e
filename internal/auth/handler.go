package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/frahmantamala/visitor-management/internal/transport"
	"github.com/frahmantamala/visitor-management/internal/user"
	"github.com/frahmantamala/visitor-management/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (LoginResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveIdentity(ctx context.Context, username string) (*Identity, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	result, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "username", dto.Username, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		Role:    result.Role,
	})
}

// AuthMiddleware verifies the bearer token and resolves it to an identity. Requests
// failing either step never reach the next handler.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.HandleServiceError(w, err)
			return
		}

		identity, err := h.Service.ResolveIdentity(r.Context(), claims.Username)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				h.Logger.Warn("auth middleware: token subject no longer exists", "username", claims.Username)
				h.HandleServiceError(w, ErrInvalidToken)
				return
			}
			h.HandleServiceError(w, err)
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		ctx = logger.With(ctx, "username", identity.Username, "role", identity.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
