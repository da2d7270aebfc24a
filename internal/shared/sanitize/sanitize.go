// Package sanitize maps internal failure text onto the closed vocabulary of
// client-safe messages. Nothing outside that vocabulary ever leaves Message.
package sanitize

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	MessageInternal         = "Internal server error"
	MessageInvalidInput     = "Invalid input data"
	MessageResourceExists   = "Resource already exists"
	MessageUsernameExists   = "Username already exists"
	MessageEmailExists      = "Email already exists"
	MessageInvalidReference = "Invalid reference - the referenced resource does not exist"
	MessageRequiredMissing  = "Required field is missing"
	MessageDatabaseFailed   = "Database operation failed"
	MessageBadCredentials   = "Invalid username or password"
	MessageAuthRequired     = "Authentication required"
	MessageNoPermission     = "You do not have permission to perform this action"
	MessageInvalidToken     = "Invalid or expired authentication token"
	MessageAuthFailed       = "Authentication failed"
	MessageUserNotFound     = "User not found"
	MessagePostNotFound     = "Post not found"
	MessageResourceNotFound = "Resource not found"
	MessageRequestFailed    = "Request failed"
	MessageTooManyRequests  = "Too many requests"
	timestampLayout         = "2006-01-02T15:04:05.000Z"
)

// rule is one row of the validation pattern table. render receives the
// submatches of pattern.
type rule struct {
	pattern *regexp.Regexp
	render  func(match []string) string
}

func literal(message string) func([]string) string {
	return func([]string) string { return message }
}

func fieldPhrase(phrase string) rule {
	return rule{
		pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase)),
		render:  literal(phrase),
	}
}

// validationRules is ordered; the first match wins. Field-specific phrases sit
// ahead of the generic type rules so that an already canonical phrase maps to
// itself. The tags rule follows "must be a string" and is shadowed by it.
var validationRules = []rule{
	fieldPhrase("Username is required"),
	fieldPhrase("Password is required"),
	fieldPhrase("Title is required"),
	fieldPhrase("Content is required"),
	fieldPhrase("Password confirmation is required"),
	fieldPhrase("Username must be a string"),
	fieldPhrase("Password must be a string"),
	fieldPhrase("Title must be a string"),
	fieldPhrase("Content must be a string"),
	fieldPhrase("Description must be a string"),
	fieldPhrase("Password confirmation must be a string"),
	fieldPhrase("Tags must be an array"),
	fieldPhrase("Each tag must be a string"),
	{regexp.MustCompile(`(?i)should not be empty`), literal("This field is required")},
	{regexp.MustCompile(`(?i)must be a string`), literal("This field must be a string")},
	{regexp.MustCompile(`(?i)each value in tags must be a string`), literal("All tags must be strings")},
	{regexp.MustCompile(`(?i)must be an array`), literal("This field must be an array")},
	{regexp.MustCompile(`(?i)must be a valid email`), literal("Please provide a valid email address")},
	{
		regexp.MustCompile(`(?i)must be longer than or equal to (\d+) characters?`),
		func(m []string) string { return "This field must be at least " + m[1] + " characters long" },
	},
	{
		regexp.MustCompile(`(?i)must be shorter than or equal to (\d+) characters?`),
		func(m []string) string { return "This field cannot exceed " + m[1] + " characters" },
	},
	{regexp.MustCompile(`(?i)must match the following`), literal("This field does not meet the required format")},
}

var safeMessages = map[string]struct{}{}

// safeTemplates cover the parameterised phrases produced by validationRules.
var safeTemplates = []*regexp.Regexp{
	regexp.MustCompile(`^This field must be at least \d+ characters long$`),
	regexp.MustCompile(`^This field cannot exceed \d+ characters$`),
}

func init() {
	for _, message := range []string{
		MessageUserNotFound,
		MessagePostNotFound,
		"Invalid credentials",
		MessageUsernameExists,
		"You can only update your own posts",
		"You can only delete your own posts",
		"Admin access required",
		"You can only access your own user data",
		"Invalid token payload",
		"Password confirmation does not match the password",
		"Username can only contain letters, numbers, and underscores",
		"Password must contain at least one lowercase letter, one uppercase letter, and one number",
		"Passwords do not match",
		"This field is required",
		"This field must be a string",
		"This field must be an array",
		"Please provide a valid email address",
		"This field does not meet the required format",
		"All tags must be strings",
		"This field cannot be empty",
		MessageInvalidInput,
		MessageResourceExists,
		MessageEmailExists,
		MessageInvalidReference,
		MessageRequiredMissing,
		MessageDatabaseFailed,
		MessageBadCredentials,
		MessageAuthRequired,
		MessageNoPermission,
		MessageInvalidToken,
		MessageAuthFailed,
		MessageResourceNotFound,
		MessageRequestFailed,
		MessageTooManyRequests,
		"Username is required",
		"Password is required",
		"Title is required",
		"Content is required",
		"Username must be a string",
		"Password must be a string",
		"Title must be a string",
		"Content must be a string",
		"Description must be a string",
		"Tags must be an array",
		"Each tag must be a string",
		"Password confirmation is required",
		"Password confirmation must be a string",
		"Username must be at least 3 characters long",
		"Username cannot exceed 30 characters",
		"Password must be at least 8 characters long",
		"Password cannot exceed 128 characters",
		"Title must be at least 1 character long",
		"Title cannot exceed 200 characters",
		"Content must be at least 1 character long",
		"Content cannot exceed 10000 characters",
		"Description cannot exceed 500 characters",
		"User registered successfully",
		"Post deleted successfully",
		"User deleted successfully",
	} {
		safeMessages[message] = struct{}{}
	}
}

// IsSafe reports whether message belongs to the client vocabulary.
func IsSafe(message string) bool {
	if _, ok := safeMessages[message]; ok {
		return true
	}
	for _, template := range safeTemplates {
		if template.MatchString(message) {
			return true
		}
	}
	return false
}

// Message returns the client-facing text for a failure reported with status.
// It is total: every input yields a member of the safe vocabulary.
func Message(status int, raw string) string {
	switch status {
	case http.StatusInternalServerError:
		return MessageInternal
	case http.StatusBadRequest:
		return validationMessage(raw)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return storageMessage(raw)
	case http.StatusUnauthorized, http.StatusForbidden:
		return authMessage(raw)
	case http.StatusNotFound:
		return notFoundMessage(raw)
	default:
		return safeOr(raw, MessageRequestFailed)
	}
}

func validationMessage(raw string) string {
	for _, r := range validationRules {
		if match := r.pattern.FindStringSubmatch(raw); match != nil {
			return r.render(match)
		}
	}
	return safeOr(raw, MessageInvalidInput)
}

func storageMessage(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "duplicate key"), strings.Contains(lower, "unique constraint"):
		if strings.Contains(lower, "username") {
			return MessageUsernameExists
		}
		if strings.Contains(lower, "email") {
			return MessageEmailExists
		}
		return MessageResourceExists
	case strings.Contains(lower, "foreign key"), strings.Contains(lower, "constraint"):
		return MessageInvalidReference
	case strings.Contains(lower, "not null"):
		return MessageRequiredMissing
	}
	return safeOr(raw, MessageDatabaseFailed)
}

func authMessage(raw string) string {
	switch {
	case strings.Contains(raw, "Invalid credentials"):
		return MessageBadCredentials
	case strings.Contains(raw, "Unauthorized"):
		return MessageAuthRequired
	case strings.Contains(raw, "Forbidden"), strings.Contains(raw, "Access denied"):
		return MessageNoPermission
	case strings.Contains(strings.ToLower(raw), "token"):
		return MessageInvalidToken
	}
	return safeOr(raw, MessageAuthFailed)
}

func notFoundMessage(raw string) string {
	switch {
	case strings.Contains(raw, MessageUserNotFound):
		return MessageUserNotFound
	case strings.Contains(raw, MessagePostNotFound):
		return MessagePostNotFound
	}
	return MessageResourceNotFound
}

func safeOr(raw, fallback string) string {
	if IsSafe(raw) {
		return raw
	}
	return fallback
}

// ErrorPayload is the only error body the API returns.
type ErrorPayload struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

// Payload builds the client error body for a failure observed at path.
func Payload(status int, path string, raw string, now time.Time) ErrorPayload {
	return ErrorPayload{
		StatusCode: status,
		Timestamp:  now.UTC().Format(timestampLayout),
		Path:       path,
		Message:    Message(status, raw),
	}
}
