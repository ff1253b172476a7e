package auth

import "github.com/frahmantamala/visitor-management/internal/user"

type Action string

const (
	ActionCreateVisitor  Action = "visitor:create"
	ActionListVisitors   Action = "visitor:list"
	ActionApproveVisitor Action = "visitor:approve"
)

// Policy maps each action to the roles allowed to perform it. An action with an empty
// role list is open to any authenticated identity; actions missing from the table are denied.
type Policy map[Action][]user.Role

func DefaultPolicy() Policy {
	return Policy{
		ActionCreateVisitor:  {user.RoleStaff},
		ActionListVisitors:   {},
		ActionApproveVisitor: {user.RoleManager},
	}
}

func (p Policy) Authorize(role user.Role, action Action) bool {
	allowed, ok := p[action]
	if !ok || role == "" {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
