package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/visitor-management/internal/transport"
	"github.com/frahmantamala/visitor-management/internal/user"
)

type Authorizer interface {
	Authorize(role user.Role, action Action) bool
}

type RBACAuthorization struct {
	*transport.BaseHandler
	authorizer Authorizer
}

func NewRBACAuthorization(authorizer Authorizer, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		authorizer:  authorizer,
	}
}

// RequireAction rejects the request with 403 unless the identity placed on the context by
// AuthMiddleware may perform action.
func (ra *RBACAuthorization) RequireAction(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				ra.Logger.WarnContext(r.Context(), "authorization check failed: identity not found in context")
				ra.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !ra.authorizer.Authorize(identity.Role, action) {
				ra.Logger.WarnContext(r.Context(), "access denied: role not allowed",
					"username", identity.Username,
					"role", identity.Role,
					"action", action)
				ra.HandleServiceError(w, ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
