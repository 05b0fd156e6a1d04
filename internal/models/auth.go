package models

import "github.com/golang-jwt/jwt/v5"

// OperatorRole enumerates platform roles carried in access tokens.
type OperatorRole string

const (
	RoleManager    OperatorRole = "MANAGER"
	RoleAdmin      OperatorRole = "ADMIN"
	RoleInstructor OperatorRole = "INSTRUCTOR"
	RoleStudent    OperatorRole = "STUDENT"
)

// CanReschedule reports whether the role may drive the reschedule wizard.
func (r OperatorRole) CanReschedule() bool {
	return r == RoleManager || r == RoleAdmin
}

// OperatorClaims is the JWT payload for platform access tokens. The
// gateway validates tokens issued by the platform; it never issues its own.
type OperatorClaims struct {
	UserID   string       `json:"user_id"`
	Role     OperatorRole `json:"role"`
	BranchID string       `json:"branch_id"`
	FullName string       `json:"full_name"`
	jwt.RegisteredClaims
}
