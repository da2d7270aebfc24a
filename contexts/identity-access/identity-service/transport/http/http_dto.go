package httptransport

import "time"

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30,username" example:"john_doe"`
	Password        string `json:"password" validate:"required,min=8,max=128,password_strength" example:"MySecurePassword123"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" example:"MySecurePassword123"`
}

type RegisterResponse struct {
	Message string `json:"message" example:"User registered successfully"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"john_doe"`
	Password string `json:"password" validate:"required" example:"MySecurePassword123"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID        string    `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Username  string    `json:"username" example:"john_doe"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
