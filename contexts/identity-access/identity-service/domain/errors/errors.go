package errors

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrMissingToken        = errors.New("missing bearer token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidTokenPayload = errors.New("invalid token payload")
	ErrAdminRequired       = errors.New("admin access required")
	ErrNotSelf             = errors.New("user data belongs to another account")
	ErrInvalidUsername     = errors.New("invalid username")
	ErrWeakPassword        = errors.New("password does not meet strength policy")
	ErrPasswordMismatch    = errors.New("password confirmation does not match")
	ErrConflict            = errors.New("storage constraint violated")
)
