package model

import "time"

const (
	RoleStudent    = "student"
	RoleCompany    = "company"
	RoleMentor     = "mentor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the one-to-one profile sub-document attached to a user. It is
// snapshotted and restored together with its owner.
type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthClaims struct {
	UserID   string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"typ"`
	TokenID  string `json:"jti"`
}

type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         AuthUser `json:"user"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleCompany, RoleMentor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
