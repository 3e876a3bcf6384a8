package models

import "time"

// Role represents the available roles for the RBAC system. The string values
// are the exact wire tokens exchanged with clients and stored in tokens.
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleStaff Role = "ROLE_STAFF"
	RoleUser  Role = "ROLE_USER"
)

// IsAdmin reports whether the role is the administrator role. An empty or
// unknown role yields false.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role is the staff role.
func (r Role) IsStaff() bool {
	return r == RoleStaff
}

// IsAdminOrStaff is a distinct policy unit: some actions are shared between
// administrators and staff while others remain admin only.
func (r Role) IsAdminOrStaff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Valid reports whether the role is one of the closed enumeration values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// DisplayName maps a role to its localized label. It is total: any value
// outside the enumeration, including the empty string, maps to the generic
// user label.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Quản trị viên"
	case RoleStaff:
		return "Nhân viên"
	default:
		return "Người dùng"
	}
}

// User represents an application account stored in the users table.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         Role       `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
