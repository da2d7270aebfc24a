package errors

import "errors"

var (
	ErrPostNotFound             = errors.New("post not found")
	ErrInvalidPost              = errors.New("invalid post")
	ErrUnauthenticated          = errors.New("authenticated actor required")
	ErrUpdateForbidden          = errors.New("actor may not update this post")
	ErrDeleteForbidden          = errors.New("actor may not delete this post")
	ErrConflict                 = errors.New("storage constraint violated")
	ErrRepositoryInvariantBroke = errors.New("repository invariant broken")
)
