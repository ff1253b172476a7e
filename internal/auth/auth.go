package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

// TokenGenerator creates and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(username string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents JWT token claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginResult is returned by Authenticate.
type LoginResult struct {
	Token     string
	Role      user.Role
	ExpiresAt time.Time
}

var (
	ErrInvalidCredentials = internal.ErrInvalidCredentials
	ErrInvalidToken       = internal.ErrInvalidToken
	ErrTokenExpired       = internal.ErrTokenExpired
	ErrPermissionDenied   = internal.ErrPermissionDenied
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ContextIdentityKey).(*Identity)
	return id, ok && id != nil
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	ctx = context.WithValue(ctx, ContextIdentityKey, id)
	return internal.ContextWithUsername(ctx, id.Username)
}
