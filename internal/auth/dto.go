package auth

import (
	"github.com/frahmantamala/visitor-management/internal/core/common/validation"
	"github.com/frahmantamala/visitor-management/internal/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Role    user.Role `json:"role"`
}
