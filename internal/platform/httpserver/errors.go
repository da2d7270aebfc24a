package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	identityerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	posterrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/internal/platform/validation"
	"scribe/internal/shared/failure"
	"scribe/internal/shared/sanitize"
)

const (
	rawUnauthorized    = "Unauthorized"
	rawInvalidToken    = "Invalid token"
	rawTooManyRequests = "Too many requests"
)

// classify maps a use-case error onto the failure taxonomy with the raw
// message the sanitizer expects. Unknown errors are internal.
func classify(err error) *failure.Error {
	var classified *failure.Error
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case errors.Is(err, identityerrors.ErrInvalidCredentials):
		return failure.Wrap(failure.KindAuthentication, "Invalid credentials", err)
	case errors.Is(err, identityerrors.ErrMissingToken),
		errors.Is(err, posterrors.ErrUnauthenticated):
		return failure.Wrap(failure.KindAuthentication, rawUnauthorized, err)
	case errors.Is(err, identityerrors.ErrInvalidTokenPayload):
		return failure.Wrap(failure.KindAuthentication, "Invalid token payload", err)
	case errors.Is(err, identityerrors.ErrInvalidToken):
		return failure.Wrap(failure.KindAuthentication, rawInvalidToken, err)
	case errors.Is(err, identityerrors.ErrAdminRequired):
		return failure.Wrap(failure.KindAuthorization, "Admin access required", err)
	case errors.Is(err, identityerrors.ErrNotSelf):
		return failure.Wrap(failure.KindAuthorization, "You can only access your own user data", err)
	case errors.Is(err, posterrors.ErrUpdateForbidden):
		return failure.Wrap(failure.KindAuthorization, "You can only update your own posts", err)
	case errors.Is(err, posterrors.ErrDeleteForbidden):
		return failure.Wrap(failure.KindAuthorization, "You can only delete your own posts", err)
	case errors.Is(err, identityerrors.ErrUserNotFound):
		return failure.Wrap(failure.KindNotFound, sanitize.MessageUserNotFound, err)
	case errors.Is(err, posterrors.ErrPostNotFound):
		return failure.Wrap(failure.KindNotFound, sanitize.MessagePostNotFound, err)
	case errors.Is(err, identityerrors.ErrUsernameTaken):
		return failure.Wrap(failure.KindConflict, sanitize.MessageUsernameExists, err)
	case errors.Is(err, identityerrors.ErrConflict),
		errors.Is(err, posterrors.ErrConflict):
		return failure.Wrap(failure.KindConflict, err.Error(), err)
	case errors.Is(err, identityerrors.ErrInvalidUsername):
		return failure.Wrap(failure.KindValidation, validation.MessageInvalidUsername, err)
	case errors.Is(err, identityerrors.ErrWeakPassword):
		return failure.Wrap(failure.KindValidation, validation.MessageWeakPassword, err)
	case errors.Is(err, identityerrors.ErrPasswordMismatch):
		return failure.Wrap(failure.KindValidation, validation.MessagePasswordsDiffer, err)
	case errors.Is(err, posterrors.ErrInvalidPost):
		raw := strings.TrimPrefix(err.Error(), posterrors.ErrInvalidPost.Error()+": ")
		return failure.Wrap(failure.KindValidation, raw, err)
	default:
		return failure.From(err)
	}
}

// writeError renders err as the sanitized error payload. Internal causes are
// logged and never leave the process.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	classified := classify(err)
	status := classified.Kind.Status()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"event", "http_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "transport",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	s.writeFailure(w, r, status, classified.Message)
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, status int, raw string) {
	writeJSON(w, status, sanitize.Payload(status, r.URL.RequestURI(), raw, s.now()))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
