package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL     = time.Hour
	defaultCacheSize    = 1000
	defaultCacheTTL     = 5 * time.Minute
	signingAlgorithm    = "HS256"
	minimumSecretLength = 32
)

// CredentialFinder looks up stored credentials by username.
type CredentialFinder interface {
	GetByUsername(ctx context.Context, username string) (*user.Credential, error)
}

// Service is the main auth service with dependencies
type Service struct {
	users          CredentialFinder
	tokenGenerator TokenGenerator
	credentials    *expirable.LRU[string, *user.Credential]
	logger         *slog.Logger
}

// NewService creates a new auth service. Credentials are never mutated after signup, so
// cached entries only age out by TTL.
func NewService(users CredentialFinder, tokenGen TokenGenerator, cacheSize int, cacheTTL time.Duration, logger *slog.Logger) *Service {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		credentials:    expirable.NewLRU[string, *user.Credential](cacheSize, nil, cacheTTL),
		logger:         logger,
	}
}

// Authenticate validates credentials and issues an access token. The username is trimmed
// the same way signup stores it.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (LoginResult, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	if err := dto.Validate(); err != nil {
		return LoginResult{}, err
	}

	cred, err := s.lookup(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(dto.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(cred.Username)
	if err != nil {
		return LoginResult{}, internal.NewInternalError("failed to sign token", err)
	}

	return LoginResult{Token: token, Role: cred.Role, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveIdentity maps a verified username to its current role.
func (s *Service) ResolveIdentity(ctx context.Context, username string) (*Identity, error) {
	cred, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Identity{Username: cred.Username, Role: cred.Role}, nil
}

func (s *Service) lookup(ctx context.Context, username string) (*user.Credential, error) {
	if cached, ok := s.credentials.Get(username); ok {
		return cached, nil
	}

	cred, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.credentials.Add(username, cred)
	return cred, nil
}

// JWTTokenGenerator signs HS256 tokens with a server-held secret.
type JWTTokenGenerator struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret string, ttl time.Duration) (*JWTTokenGenerator, error) {
	if len(secret) < minimumSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minimumSecretLength)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenGenerator{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  time.Now,
	}, nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(username string) (string, time.Time, error) {
	now := j.clock()
	expiresAt := now.Add(j.ttl)

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithValidMethods([]string{signingAlgorithm}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
