package model

import "time"

// User is the credential-store record. Username stays NULL until the
// account finishes setup, and IsActive flips to true exactly once at
// that point. TokenValidAfter is bumped on password changes so that
// access tokens issued before the change stop verifying.
type User struct {
	ID              string
	Email           string
	Username        *string
	PasswordHash    string
	IsAdmin         bool
	IsActive        bool
	Img             string
	Bio             string
	Gender          string
	Course          string
	Phone           string
	TokenValidAfter time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PublicUser is the sanitized view returned by the API. The password
// hash never leaves the service layer.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	Img       string    `json:"img,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Course    string    `json:"course,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) Public() PublicUser {
	p := PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		Img:       u.Img,
		Bio:       u.Bio,
		Gender:    u.Gender,
		Course:    u.Course,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Username != nil {
		p.Username = *u.Username
	}

	return p
}

// AccessClaims is the decoded payload of a verified access token.
type AccessClaims struct {
	UserID    string
	IsAdmin   bool
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshClaims is the decoded payload of a verified refresh token.
type RefreshClaims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthResult is what the session lifecycle hands back after register,
// login, and setup-username: a fresh token pair plus the profile view.
type AuthResult struct {
	User             PublicUser `json:"user"`
	AccessToken      string     `json:"access_token"`
	RefreshToken     string     `json:"refresh_token,omitempty"`
	RefreshExpiresAt time.Time  `json:"-"`
}

// RefreshResult carries the outcome of a token refresh. The refresh
// token is rotated on every use; the old one is revoked.
type RefreshResult struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token,omitempty"`
	RefreshExpiresAt time.Time `json:"-"`
}
