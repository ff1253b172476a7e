package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/visitor-management/internal"
	userDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register validates the signup request, hashes the password and stores the credential.
func (s *Service) Register(ctx context.Context, dto SignupDTO) (*Credential, error) {
	dto.Username = strings.TrimSpace(dto.Username)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, dto.Username); err == nil {
		s.logger.Warn("signup rejected: duplicate username", "username", dto.Username)
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return nil, internal.NewInternalError("failed to check username", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         string(dto.RoleOrDefault()),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.logger.Warn("signup rejected: duplicate username", "username", dto.Username)
			return nil, ErrDuplicateUsername
		}
		s.logger.Error("failed to store credential", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", row.ID, "username", row.Username, "role", row.Role)
	return FromDataModel(row), nil
}

// GetByUsername returns the stored credential or ErrNotFound.
func (s *Service) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return FromDataModel(row), nil
}
