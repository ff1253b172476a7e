package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

// mockCredentialFinder counts lookups so cache behaviour can be observed.
type mockCredentialFinder struct {
	credentials map[string]*user.Credential
	calls       int
	err         error
}

func newMockCredentialFinder() *mockCredentialFinder {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	return &mockCredentialFinder{
		credentials: map[string]*user.Credential{
			"alice": {ID: 1, Username: "alice", PasswordHash: string(hash), Role: user.RoleStaff},
			"bob":   {ID: 2, Username: "bob", PasswordHash: string(hash), Role: user.RoleManager},
		},
	}
}

func (m *mockCredentialFinder) GetByUsername(_ context.Context, username string) (*user.Credential, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if cred, ok := m.credentials[username]; ok {
		return cred, nil
	}
	return nil, user.ErrNotFound
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		finder  *mockCredentialFinder
		tokens  *JWTTokenGenerator
		service *Service
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		ctx = context.Background()
		finder = newMockCredentialFinder()
		tokens, err = NewJWTTokenGenerator(testSecret, time.Hour)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		service = NewService(finder, tokens, 10, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("issues a token that verifies to the same username", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Username: "alice", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Token).NotTo(gomega.BeEmpty())
			gomega.Expect(result.Role).To(gomega.Equal(user.RoleStaff))
			gomega.Expect(result.ExpiresAt).To(gomega.BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))

			claims, err := service.ValidateAccessToken(result.Token)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Username).To(gomega.Equal("alice"))
			gomega.Expect(claims.Subject).To(gomega.Equal("alice"))
		})

		ginkgo.It("trims the username before the lookup", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Username: "  alice ", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(result.Token)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Username).To(gomega.Equal("alice"))
		})

		ginkgo.It("returns the manager role for managers", func() {
			result, err := service.Authenticate(ctx, LoginDTO{Username: "bob", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Role).To(gomega.Equal(user.RoleManager))
		})

		ginkgo.It("rejects a wrong password", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Username: "alice", Password: "wrong"})
			gomega.Expect(errors.Is(err, ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects an unknown user with the same error", func() {
			_, err := service.Authenticate(ctx, LoginDTO{Username: "mallory", Password: "correct_password"})
			gomega.Expect(errors.Is(err, ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("requires username and password", func() {
			_, err := service.Authenticate(ctx, LoginDTO{})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			gomega.Expect(finder.calls).To(gomega.Equal(0))
		})

		ginkgo.It("passes store failures through", func() {
			finder.err = internal.NewInternalError("failed to load user", errors.New("db down"))
			_, err := service.Authenticate(ctx, LoginDTO{Username: "alice", Password: "correct_password"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("reports an expired token separately", func() {
			tokens.clock = func() time.Time { return time.Now().Add(-2 * time.Hour) }
			token, _, err := tokens.GenerateAccessToken("alice")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			gomega.Expect(errors.Is(err, ErrTokenExpired)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a token signed with another secret", func() {
			other, err := NewJWTTokenGenerator("another-secret-that-is-also-32-characters", time.Hour)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			token, _, err := other.GenerateAccessToken("alice")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			gomega.Expect(errors.Is(err, ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects unsigned tokens", func() {
			claims := &Claims{
				Username: "alice",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			gomega.Expect(errors.Is(err, ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("rejects garbage", func() {
			_, err := service.ValidateAccessToken("not-a-jwt")
			gomega.Expect(errors.Is(err, ErrInvalidToken)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("ResolveIdentity", func() {
		ginkgo.It("caches successful lookups", func() {
			first, err := service.ResolveIdentity(ctx, "bob")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			second, err := service.ResolveIdentity(ctx, "bob")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(first).To(gomega.Equal(second))
			gomega.Expect(first.Role).To(gomega.Equal(user.RoleManager))
			gomega.Expect(finder.calls).To(gomega.Equal(1))
		})

		ginkgo.It("does not cache misses", func() {
			_, err := service.ResolveIdentity(ctx, "ghost")
			gomega.Expect(errors.Is(err, user.ErrNotFound)).To(gomega.BeTrue())

			finder.credentials["ghost"] = &user.Credential{ID: 9, Username: "ghost", Role: user.RoleStaff}
			identity, err := service.ResolveIdentity(ctx, "ghost")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(identity.Username).To(gomega.Equal("ghost"))
			gomega.Expect(finder.calls).To(gomega.Equal(2))
		})
	})

	ginkgo.It("refuses short signing secrets", func() {
		_, err := NewJWTTokenGenerator("short", time.Hour)
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
