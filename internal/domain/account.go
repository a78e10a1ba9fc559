package domain

import "time"

// AccountRole separates clients who submit cases from staff who progress them.
type AccountRole string

const (
	RoleClient AccountRole = "client"
	RoleStaff  AccountRole = "staff"
)

// Account is the domain model for a login-capable identity.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         AccountRole
	CreatedAt    time.Time
}

// IsStaff reports whether the account may accept and progress cases.
func (a *Account) IsStaff() bool {
	return a != nil && a.Role == RoleStaff
}
