package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/visitor-management/internal"
	userDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/user"
	"github.com/frahmantamala/visitor-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	users     map[string]*userDatamodel.User
	nextID    int64
	createErr error
	getErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*userDatamodel.User), nextID: 1}
}

func (m *mockUserRepository) Create(_ context.Context, u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[u.Username]; exists {
		return user.ErrDuplicateUsername
	}
	u.ID = m.nextID
	m.nextID++
	stored := *u
	m.users[u.Username] = &stored
	return nil
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*userDatamodel.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockUserRepository()
		service = user.NewService(repo, bcrypt.MinCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Register", func() {
		It("stores a bcrypt hash and defaults the role to staff", func() {
			cred, err := service.Register(ctx, user.SignupDTO{Username: "alice", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.ID).To(Equal(int64(1)))
			Expect(cred.Role).To(Equal(user.RoleStaff))

			stored := repo.users["alice"]
			Expect(stored.PasswordHash).NotTo(Equal("secret"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret"))).To(Succeed())
		})

		It("accepts the manager role", func() {
			cred, err := service.Register(ctx, user.SignupDTO{Username: "bob", Password: "secret", Role: "manager"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.IsManager()).To(BeTrue())
		})

		It("trims the username", func() {
			_, err := service.Register(ctx, user.SignupDTO{Username: "  carol ", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.users).To(HaveKey("carol"))
		})

		It("rejects a duplicate username and keeps the first account", func() {
			_, err := service.Register(ctx, user.SignupDTO{Username: "alice", Password: "first"})
			Expect(err).NotTo(HaveOccurred())
			firstHash := repo.users["alice"].PasswordHash

			_, err = service.Register(ctx, user.SignupDTO{Username: "alice", Password: "second", Role: "manager"})
			Expect(errors.Is(err, user.ErrDuplicateUsername)).To(BeTrue())

			Expect(repo.users["alice"].PasswordHash).To(Equal(firstHash))
			Expect(repo.users["alice"].Role).To(Equal("staff"))
		})

		It("maps a unique violation raised by the store", func() {
			repo.createErr = user.ErrDuplicateUsername
			_, err := service.Register(ctx, user.SignupDTO{Username: "dave", Password: "secret"})
			Expect(errors.Is(err, user.ErrDuplicateUsername)).To(BeTrue())
		})

		DescribeTable("validation",
			func(dto user.SignupDTO, field string) {
				_, err := service.Register(ctx, dto)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(appErr.GetDetailedMessage()).To(ContainSubstring(field))
				Expect(repo.users).To(BeEmpty())
			},
			Entry("missing username", user.SignupDTO{Password: "secret"}, "username"),
			Entry("blank username", user.SignupDTO{Username: "   ", Password: "secret"}, "username"),
			Entry("missing password", user.SignupDTO{Username: "erin"}, "password"),
			Entry("unknown role", user.SignupDTO{Username: "erin", Password: "secret", Role: "admin"}, "role"),
			Entry("password longer than bcrypt accepts", user.SignupDTO{Username: "erin", Password: strings.Repeat("x", 73)}, "password"),
		)

		It("hides store failures behind an internal error", func() {
			repo.createErr = errors.New("disk full")
			_, err := service.Register(ctx, user.SignupDTO{Username: "frank", Password: "secret"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("GetByUsername", func() {
		It("returns the stored credential", func() {
			_, err := service.Register(ctx, user.SignupDTO{Username: "alice", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())

			cred, err := service.GetByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(cred.Username).To(Equal("alice"))
			Expect(cred.PasswordHash).NotTo(BeEmpty())
		})

		It("returns ErrNotFound for unknown users", func() {
			_, err := service.GetByUsername(ctx, "nobody")
			Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
		})

		It("wraps other failures", func() {
			repo.getErr = errors.New("connection reset")
			_, err := service.GetByUsername(ctx, "alice")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})
})
