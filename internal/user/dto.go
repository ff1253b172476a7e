package user

import (
	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/core/common/validation"
)

// SignupDTO is the transport shape accepted by POST /signup.
type SignupDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (d SignupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(64)
	v.Field("password", d.Password).Required().MaxLength(72)
	v.Field("role", d.Role).OneOf(internal.ErrCodeInvalidRole, string(RoleStaff), string(RoleManager))
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// RoleOrDefault returns the requested role, or staff when none was given.
func (d SignupDTO) RoleOrDefault() Role {
	if d.Role == "" {
		return RoleStaff
	}
	return Role(d.Role)
}

type SignupResponse struct {
	Message string `json:"message"`
}
