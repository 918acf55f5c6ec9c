package model

import "time"

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// LoginMethod identifies how an account authenticates.
type LoginMethod string

const (
	LoginMethodEmail  LoginMethod = "email"
	LoginMethodGoogle LoginMethod = "google"
)

// User represents a user in the database. PasswordHash is set only for
// email-method accounts; GoogleID only for google-method accounts.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	LoginMethod  LoginMethod
	GoogleID     *string
	Role         Role
	IsActive     bool
	LastLogin    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents an email/password login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest represents a login backed by a verified Google identity
// assertion. SubjectID is Google's stable account identifier.
type GoogleLoginRequest struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// DeleteAccountRequest carries the confirmation for account deletion:
// the current password for email-method accounts, or a re-asserted Google
// subject id for google-method accounts.
type DeleteAccountRequest struct {
	Password        string `json:"password,omitempty"`
	GoogleSubjectID string `json:"google_subject_id,omitempty"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	LoginMethod LoginMethod `json:"login_method"`
	Role        Role        `json:"role"`
	IsActive    bool        `json:"is_active"`
	LastLogin   time.Time   `json:"last_login"`
	CreatedAt   time.Time   `json:"created_at"`
}

// PublicView converts a User into its externally visible representation.
// The password hash is never part of any response shape.
func (u *User) PublicView() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		LoginMethod: u.LoginMethod,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
