package user

import (
	"github.com/frahmantamala/visitor-management/internal"
	userDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/user"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

// Roles lists every role a credential may hold.
var Roles = []Role{RoleStaff, RoleManager}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Credential is a stored username/password-hash/role triple.
type Credential struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

func (c *Credential) IsManager() bool {
	return c.Role == RoleManager
}

var (
	ErrNotFound          = internal.ErrUserNotFound
	ErrDuplicateUsername = internal.ErrDuplicateUsername
)

func ToDataModel(c *Credential) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           c.ID,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Role:         string(c.Role),
	}
}

func FromDataModel(u *userDatamodel.User) *Credential {
	return &Credential{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         Role(u.Role),
	}
}
