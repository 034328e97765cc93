package models

// UserRole enumerates the authorization roles recognised by the backend.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// User represents an account row in the users table.
// It mirrors the schema owned by the backend application; the orchestrator
// only ever writes one of these, the bootstrap administrative account.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name"`

	// Password stores the user's password representation.
	// This value MUST be a bcrypt hash, never plaintext.
	Password string `json:"-"`

	// Role is the authorization role assigned to the account.
	Role UserRole `json:"role"`

	// TotalVacationDays is the annual vacation allowance.
	TotalVacationDays int `json:"total_vacation_days"`

	// IsActive marks whether the account may authenticate.
	IsActive bool `json:"is_active"`

	// IsSuperuser grants unrestricted permissions in the backend.
	IsSuperuser bool `json:"is_superuser"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
