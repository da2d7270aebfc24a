package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authorization "scribe/contexts/identity-access/authorization-service"
	identity "scribe/contexts/identity-access/identity-service"
	postservice "scribe/contexts/publishing/post-service"
	"scribe/internal/shared/sanitize"
)

var fixedNow = time.Date(2026, 3, 14, 8, 26, 53, 589_000_000, time.UTC)

func newTestServer(t *testing.T, rateLimit int) *Server {
	t.Helper()
	authz := authorization.NewModule(authorization.Dependencies{AdminUsernames: []string{"admin", "dev-admin"}})
	identityModule, err := identity.NewInMemoryModule(authz.Authorizer, "unit-secret", nil)
	if err != nil {
		t.Fatalf("identity module: %v", err)
	}
	return New(
		identityModule,
		postservice.NewInMemoryModule(authz.Authorizer, nil),
		nil,
		Options{
			Addr:               ":0",
			RateLimitPerMinute: rateLimit,
			Now:                func() time.Time { return fixedNow },
		},
	)
}

func doRequest(t *testing.T, server *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) sanitize.ErrorPayload {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d body=%s", status, rr.Code, rr.Body.String())
	}
	payload := decodeBody[sanitize.ErrorPayload](t, rr)
	if payload.Message != message {
		t.Fatalf("expected message %q, got %q", message, payload.Message)
	}
	if payload.StatusCode != status {
		t.Fatalf("expected statusCode %d, got %d", status, payload.StatusCode)
	}
	return payload
}

func registerAndLogin(t *testing.T, server *Server, username string) string {
	t.Helper()
	body := `{"username":"` + username + `","password":"Secret123","confirmPassword":"Secret123"}`
	if rr := doRequest(t, server, http.MethodPost, "/auth/register", body, ""); rr.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", username, rr.Code, rr.Body.String())
	}
	rr := doRequest(t, server, http.MethodPost, "/auth/login", `{"username":"`+username+`","password":"Secret123"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rr.Code, rr.Body.String())
	}
	return decodeBody[map[string]string](t, rr)["access_token"]
}

func createPost(t *testing.T, server *Server, token string) map[string]any {
	t.Helper()
	rr := doRequest(t, server, http.MethodPost, "/posts", `{"title":"Hello","content":"World","tags":["go"]}`, token)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create post: %d %s", rr.Code, rr.Body.String())
	}
	return decodeBody[map[string]any](t, rr)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, 0)
	rr := doRequest(t, server, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRegisterLoginAndCreatePost(t *testing.T) {
	server := newTestServer(t, 0)

	rr := doRequest(t, server, http.MethodPost, "/auth/register", `{"username":"alice","password":"Secret123","confirmPassword":"Secret123"}`, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[map[string]string](t, rr)["message"]; got != "User registered successfully" {
		t.Fatalf("unexpected message %q", got)
	}

	token := registerAndLogin(t, server, "bob")
	post := createPost(t, server, token)
	author, _ := post["author"].(map[string]any)
	if author["username"] != "bob" || post["authorId"] != author["id"] {
		t.Fatalf("unexpected author in %v", post)
	}

	list := doRequest(t, server, http.MethodGet, "/posts", "", "")
	if list.Code != http.StatusOK {
		t.Fatalf("expected public list 200, got %d", list.Code)
	}
	if posts := decodeBody[[]map[string]any](t, list); len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}

	get := doRequest(t, server, http.MethodGet, "/posts/"+post["id"].(string), "", "")
	if get.Code != http.StatusOK {
		t.Fatalf("expected public get 200, got %d", get.Code)
	}
}

func TestBearerFailuresAreSanitized(t *testing.T) {
	server := newTestServer(t, 0)

	payload := expectError(t, doRequest(t, server, http.MethodPost, "/posts", `{"title":"a","content":"b"}`, ""),
		http.StatusUnauthorized, sanitize.MessageAuthRequired)
	if payload.Path != "/posts" || payload.Timestamp != "2026-03-14T08:26:53.589Z" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	expectError(t, doRequest(t, server, http.MethodPost, "/posts", `{"title":"a","content":"b"}`, "not-a-jwt"),
		http.StatusUnauthorized, sanitize.MessageInvalidToken)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Basic abc")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	expectError(t, rr, http.StatusUnauthorized, sanitize.MessageAuthRequired)
}

func TestPostOwnershipOverHTTP(t *testing.T) {
	server := newTestServer(t, 0)
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")
	adminToken := registerAndLogin(t, server, "admin")

	post := createPost(t, server, aliceToken)
	path := "/posts/" + post["id"].(string)

	expectError(t, doRequest(t, server, http.MethodPatch, path, `{"title":"Hacked"}`, bobToken),
		http.StatusForbidden, "You can only update your own posts")
	expectError(t, doRequest(t, server, http.MethodDelete, path, "", bobToken),
		http.StatusForbidden, "You can only delete your own posts")

	rr := doRequest(t, server, http.MethodPatch, path, `{"title":"Edited by admin"}`, adminToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected admin update 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	updated := decodeBody[map[string]any](t, rr)
	if updated["title"] != "Edited by admin" || updated["authorId"] != post["authorId"] || updated["content"] != "World" {
		t.Fatalf("unexpected update %v", updated)
	}

	rr = doRequest(t, server, http.MethodDelete, path, "", aliceToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected owner delete 200, got %d", rr.Code)
	}
	if got := decodeBody[map[string]string](t, rr)["message"]; got != "Post deleted successfully" {
		t.Fatalf("unexpected delete message %q", got)
	}
	expectError(t, doRequest(t, server, http.MethodGet, path, "", ""), http.StatusNotFound, sanitize.MessagePostNotFound)
	expectError(t, doRequest(t, server, http.MethodDelete, path, "", aliceToken), http.StatusNotFound, sanitize.MessagePostNotFound)
}

func TestValidationMessages(t *testing.T) {
	server := newTestServer(t, 0)
	token := registerAndLogin(t, server, "alice")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		token   string
		message string
	}{
		{name: "short username", method: http.MethodPost, path: "/auth/register", body: `{"username":"ab","password":"Secret123","confirmPassword":"Secret123"}`, message: "This field must be at least 3 characters long"},
		{name: "bad charset", method: http.MethodPost, path: "/auth/register", body: `{"username":"bad name","password":"Secret123","confirmPassword":"Secret123"}`, message: "Username can only contain letters, numbers, and underscores"},
		{name: "weak password", method: http.MethodPost, path: "/auth/register", body: `{"username":"carol","password":"alllowercase","confirmPassword":"alllowercase"}`, message: "Password must contain at least one lowercase letter, one uppercase letter, and one number"},
		{name: "password mismatch", method: http.MethodPost, path: "/auth/register", body: `{"username":"carol","password":"Secret123","confirmPassword":"Secret124"}`, message: "Passwords do not match"},
		{name: "missing login field", method: http.MethodPost, path: "/auth/login", body: `{"username":"alice"}`, message: "This field is required"},
		{name: "malformed json", method: http.MethodPost, path: "/auth/login", body: `{"username":`, message: sanitize.MessageInvalidInput},
		{name: "empty title", method: http.MethodPost, path: "/posts", body: `{"title":"","content":"x"}`, token: token, message: "This field is required"},
		{name: "long desc", method: http.MethodPost, path: "/posts", body: `{"title":"t","content":"x","desc":"` + string(bytes.Repeat([]byte("d"), 501)) + `"}`, token: token, message: "This field cannot exceed 500 characters"},
		{name: "tags not array", method: http.MethodPost, path: "/posts", body: `{"title":"t","content":"x","tags":"go"}`, token: token, message: "Tags must be an array"},
		{name: "tag not string", method: http.MethodPost, path: "/posts", body: `{"title":"t","content":"x","tags":[1]}`, token: token, message: "This field must be a string"},
		{name: "title not string", method: http.MethodPost, path: "/posts", body: `{"title":5,"content":"x"}`, token: token, message: "Title must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, doRequest(t, server, tt.method, tt.path, tt.body, tt.token), http.StatusBadRequest, tt.message)
		})
	}
}

func TestAuthFailures(t *testing.T) {
	server := newTestServer(t, 0)
	registerAndLogin(t, server, "alice")

	expectError(t,
		doRequest(t, server, http.MethodPost, "/auth/register", `{"username":"alice","password":"Secret123","confirmPassword":"Secret123"}`, ""),
		http.StatusConflict, sanitize.MessageUsernameExists)

	wrongPassword := expectError(t,
		doRequest(t, server, http.MethodPost, "/auth/login", `{"username":"alice","password":"Wrong1234"}`, ""),
		http.StatusUnauthorized, sanitize.MessageBadCredentials)
	unknownUser := expectError(t,
		doRequest(t, server, http.MethodPost, "/auth/login", `{"username":"nobody","password":"Wrong1234"}`, ""),
		http.StatusUnauthorized, sanitize.MessageBadCredentials)
	if wrongPassword.Message != unknownUser.Message {
		t.Fatal("login failures must be indistinguishable")
	}
}

func TestUsersEndpoints(t *testing.T) {
	server := newTestServer(t, 0)
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")
	adminToken := registerAndLogin(t, server, "admin")

	expectError(t, doRequest(t, server, http.MethodGet, "/users", "", aliceToken), http.StatusForbidden, "Admin access required")

	rr := doRequest(t, server, http.MethodGet, "/users", "", adminToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected admin list 200, got %d", rr.Code)
	}
	users := decodeBody[[]map[string]any](t, rr)
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for _, user := range users {
		if _, leaked := user["password"]; leaked {
			t.Fatal("user projection must not carry password fields")
		}
	}

	var aliceID string
	for _, user := range users {
		if user["username"] == "alice" {
			aliceID = user["id"].(string)
		}
	}

	if rr := doRequest(t, server, http.MethodGet, "/users/"+aliceID, "", aliceToken); rr.Code != http.StatusOK {
		t.Fatalf("expected self read 200, got %d", rr.Code)
	}
	expectError(t, doRequest(t, server, http.MethodGet, "/users/"+aliceID, "", bobToken),
		http.StatusForbidden, "You can only access your own user data")
	expectError(t, doRequest(t, server, http.MethodGet, "/users/missing", "", adminToken),
		http.StatusNotFound, sanitize.MessageUserNotFound)

	createPost(t, server, aliceToken)
	expectError(t, doRequest(t, server, http.MethodDelete, "/users/"+aliceID, "", bobToken),
		http.StatusForbidden, "You can only access your own user data")
	rr = doRequest(t, server, http.MethodDelete, "/users/"+aliceID, "", aliceToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected self delete 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	posts := decodeBody[[]map[string]any](t, doRequest(t, server, http.MethodGet, "/posts", "", ""))
	if len(posts) != 0 {
		t.Fatalf("expected author posts removed, got %d", len(posts))
	}
	expectError(t, doRequest(t, server, http.MethodPost, "/posts", `{"title":"a","content":"b"}`, aliceToken),
		http.StatusUnauthorized, sanitize.MessageInvalidToken)
}

func TestRateLimitReturnsTooManyRequests(t *testing.T) {
	server := newTestServer(t, 2)
	for i := 0; i < 2; i++ {
		if rr := doRequest(t, server, http.MethodGet, "/posts", "", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	expectError(t, doRequest(t, server, http.MethodGet, "/posts", "", ""), http.StatusTooManyRequests, sanitize.MessageTooManyRequests)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected separate budget for another client, got %d", rr.Code)
	}
}

func TestPanicIsSanitized(t *testing.T) {
	server := newTestServer(t, 0)
	server.mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("secret stack detail")
	})
	rr := doRequest(t, server, http.MethodGet, "/boom", "", "")
	expectError(t, rr, http.StatusInternalServerError, sanitize.MessageInternal)
	if bytes.Contains(rr.Body.Bytes(), []byte("secret")) {
		t.Fatal("panic detail leaked to client")
	}
}

func TestUnknownRouteIsSanitized(t *testing.T) {
	server := newTestServer(t, 0)
	expectError(t, doRequest(t, server, http.MethodGet, "/nope", "", ""), http.StatusNotFound, sanitize.MessageResourceNotFound)
}


func TestErrorPathKeepsQueryString(t *testing.T) {
	server := newTestServer(t, 0)
	payload := expectError(t, doRequest(t, server, http.MethodGet, "/posts/missing?include=author", "", ""), http.StatusNotFound, sanitize.MessagePostNotFound)
	if payload.Path != "/posts/missing?include=author" {
		t.Fatalf("expected path with query, got %q", payload.Path)
	}
}

func TestUpdateBodyIsValidatedBeforeOwnership(t *testing.T) {
	server := newTestServer(t, 0)
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")
	path := "/posts/" + createPost(t, server, aliceToken)["id"].(string)

	expectError(t, doRequest(t, server, http.MethodPatch, path, `{"title":42}`, bobToken),
		http.StatusBadRequest, "Title must be a string")
	expectError(t, doRequest(t, server, http.MethodPatch, "/posts/missing", `{"title":"ok"}`, bobToken),
		http.StatusNotFound, sanitize.MessagePostNotFound)
	expectError(t, doRequest(t, server, http.MethodPatch, path, `{"title":"ok"}`, bobToken),
		http.StatusForbidden, "You can only update your own posts")
}
