package entities

import "time"

// User is a registered account. PasswordHash never leaves the context.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenClaims are the verified contents of an access token.
type TokenClaims struct {
	Subject   string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
