package sanitize

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestValidationRuleOrder(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		// generic type rule shadows the tags rule
		{"each value in tags must be a string", "This field must be a string"},
		{"All tags must be strings", "All tags must be strings"},
		// field phrases run first so canonical text is stable
		{"title must be a string", "Title must be a string"},
		{"Title must be a string", "Title must be a string"},
		{"tags must be an array", "Tags must be an array"},
		{"desc must be a string", "This field must be a string"},
	}
	for _, tc := range cases {
		if got := Message(http.StatusBadRequest, tc.raw); got != tc.want {
			t.Fatalf("Message(400, %q) = %q, want %q", tc.raw, got, tc.want)
		}
		if again := Message(http.StatusBadRequest, tc.want); again != tc.want {
			t.Fatalf("Message(400, %q) not stable: %q", tc.want, again)
		}
	}
}

func TestMessageByStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		raw    string
		want   string
	}{
		{"internal hides cause", http.StatusInternalServerError, `pq: relation "posts" does not exist`, "Internal server error"},
		{"internal hides safe text too", http.StatusInternalServerError, "User not found", "Internal server error"},

		{"min length", http.StatusBadRequest, "username must be longer than or equal to 3 characters", "This field must be at least 3 characters long"},
		{"max length", http.StatusBadRequest, "title must be shorter than or equal to 200 characters", "This field cannot exceed 200 characters"},
		{"required", http.StatusBadRequest, "content should not be empty", "This field is required"},
		{"wrong type", http.StatusBadRequest, "desc must be a string", "This field must be a string"},
		{"array", http.StatusBadRequest, "ids must be an array", "This field must be an array"},
		{"email", http.StatusBadRequest, "email must be a valid email", "Please provide a valid email address"},
		{"pattern", http.StatusBadRequest, "username must match the following: /^[a-z]+$/", "This field does not meet the required format"},
		{"tag element", http.StatusBadRequest, "each value in tags must be a string", "This field must be a string"},
		{"field phrase", http.StatusBadRequest, "Tags must be an array", "Tags must be an array"},
		{"safe validation phrase", http.StatusBadRequest, "Passwords do not match", "Passwords do not match"},
		{"unknown validation", http.StatusBadRequest, "json: cannot unmarshal number into Go struct field", "Invalid input data"},

		{"duplicate username", http.StatusConflict, `ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`, "Username already exists"},
		{"duplicate email", http.StatusConflict, "UNIQUE constraint failed: users.email", "Email already exists"},
		{"duplicate other", http.StatusConflict, "duplicate key value violates unique constraint \"posts_pkey\"", "Resource already exists"},
		{"foreign key", http.StatusUnprocessableEntity, "insert violates foreign key constraint \"fk_posts_author\"", "Invalid reference - the referenced resource does not exist"},
		{"not null", http.StatusConflict, "null value in column \"title\" violates not null", "Required field is missing"},
		{"unknown storage", http.StatusConflict, "deadlock detected", "Database operation failed"},
		{"safe conflict", http.StatusConflict, "Username already exists", "Username already exists"},

		{"bad credentials", http.StatusUnauthorized, "Invalid credentials", "Invalid username or password"},
		{"missing auth", http.StatusUnauthorized, "Unauthorized", "Authentication required"},
		{"forbidden", http.StatusForbidden, "Forbidden resource", "You do not have permission to perform this action"},
		{"access denied", http.StatusForbidden, "Access denied for user", "You do not have permission to perform this action"},
		{"token", http.StatusUnauthorized, "Invalid token", "Invalid or expired authentication token"},
		{"token payload", http.StatusUnauthorized, "Invalid token payload", "Invalid or expired authentication token"},
		{"ownership", http.StatusForbidden, "You can only delete your own posts", "You can only delete your own posts"},
		{"admin only", http.StatusForbidden, "Admin access required", "Admin access required"},
		{"unknown auth", http.StatusUnauthorized, "signature is invalid", "Authentication failed"},

		{"user missing", http.StatusNotFound, "User not found", "User not found"},
		{"post missing", http.StatusNotFound, "Post with id 42: Post not found", "Post not found"},
		{"route missing", http.StatusNotFound, "Cannot GET /nope", "Resource not found"},

		{"rate limited", http.StatusTooManyRequests, "Too many requests", "Too many requests"},
		{"other unsafe", http.StatusMethodNotAllowed, "method PUT not allowed on /posts", "Request failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.status, tc.raw); got != tc.want {
				t.Fatalf("Message(%d, %q) = %q, want %q", tc.status, tc.raw, got, tc.want)
			}
		})
	}
}

func TestMessageIsTotalAndIdempotent(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
		418,
	}
	raws := []string{
		"",
		"panic: runtime error: index out of range [3] with length 2",
		"username must be longer than or equal to 3 characters",
		"password must be shorter than or equal to 128 characters",
		"duplicate key value violates unique constraint \"users_username_key\"",
		"Invalid credentials",
		"Invalid token",
		"User not found",
		"Post not found",
		"SELECT * FROM users WHERE password_hash = '$2a$10$abc'",
		strings.Repeat("x", 4096),
	}

	for _, status := range statuses {
		for _, raw := range raws {
			first := Message(status, raw)
			if !IsSafe(first) && first != MessageInternal {
				t.Fatalf("Message(%d, %q) = %q which is outside the vocabulary", status, raw, first)
			}
			second := Message(status, first)
			if second != first {
				t.Fatalf("Message(%d) not idempotent: %q -> %q", status, first, second)
			}
		}
	}
}

func TestSafeMessagesSurviveTheirBranch(t *testing.T) {
	cases := []struct {
		status int
		raw    string
	}{
		{http.StatusBadRequest, "This field must be at least 8 characters long"},
		{http.StatusBadRequest, "This field cannot exceed 30 characters"},
		{http.StatusBadRequest, "Username must be a string"},
		{http.StatusBadRequest, "Password must contain at least one lowercase letter, one uppercase letter, and one number"},
		{http.StatusBadRequest, "Username can only contain letters, numbers, and underscores"},
		{http.StatusUnauthorized, "Invalid username or password"},
		{http.StatusUnauthorized, "Authentication required"},
		{http.StatusForbidden, "You can only access your own user data"},
		{http.StatusConflict, "Resource already exists"},
		{http.StatusNotFound, "Resource not found"},
	}
	for _, tc := range cases {
		if got := Message(tc.status, tc.raw); got != tc.raw {
			t.Fatalf("Message(%d, %q) = %q, want unchanged", tc.status, tc.raw, got)
		}
	}
}

func TestIsSafeRequiresExactMatch(t *testing.T) {
	if IsSafe("User not found: SELECT * FROM users") {
		t.Fatal("expected safe phrase embedded in other text to be rejected")
	}
	if IsSafe("This field must be at least three characters long") {
		t.Fatal("expected template to require a number")
	}
	if !IsSafe("This field cannot exceed 10000 characters") {
		t.Fatal("expected parameterised template to be accepted")
	}
}

func TestPayload(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.FixedZone("CET", 3600))
	payload := Payload(http.StatusNotFound, "/posts/abc", "record not found", now)

	if payload.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", payload.StatusCode)
	}
	if payload.Timestamp != "2026-03-14T08:26:53.589Z" {
		t.Fatalf("unexpected timestamp %q", payload.Timestamp)
	}
	if payload.Path != "/posts/abc" {
		t.Fatalf("unexpected path %q", payload.Path)
	}
	if payload.Message != "Resource not found" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}
