package seed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authorization "scribe/contexts/identity-access/authorization-service"
	identity "scribe/contexts/identity-access/identity-service"
	postservice "scribe/contexts/publishing/post-service"
	"scribe/internal/platform/httpserver"
	"scribe/internal/shared/sanitize"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	authz := authorization.NewModule(authorization.Dependencies{AdminUsernames: []string{"dev-admin"}})
	identityModule, err := identity.NewInMemoryModule(authz.Authorizer, "seed-secret", nil)
	if err != nil {
		t.Fatalf("identity module: %v", err)
	}
	if _, _, err := identityModule.Handler.Register.Provision(context.Background(), "dev-admin", "DevAdmin123"); err != nil {
		t.Fatalf("provision admin: %v", err)
	}
	server := httpserver.New(identityModule, postservice.NewInMemoryModule(authz.Authorizer, nil), nil, httpserver.Options{})
	api := httptest.NewServer(server.Handler())
	t.Cleanup(api.Close)
	return api
}

func TestRunCreatesSamplePosts(t *testing.T) {
	api := newAPI(t)

	summary, err := Run(context.Background(), NewClient(api.URL+"/"), Options{
		Username: "dev-admin",
		Password: "DevAdmin123",
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Created != len(SamplePosts) {
		t.Fatalf("expected %d posts, got %d", len(SamplePosts), summary.Created)
	}
	if summary.TagCounts["Career"] != 8 || summary.TagCounts["Frontend"] != 4 {
		t.Fatalf("unexpected tag counts: %+v", summary.TagCounts)
	}
	tags := summary.SortedTags()
	if len(tags) != 5 || tags[0] != "Backend" || tags[4] != "OpenSource" {
		t.Fatalf("unexpected tag order: %v", tags)
	}

	resp, err := http.Get(api.URL + "/posts")
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	defer resp.Body.Close()
	var posts []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts) != len(SamplePosts) {
		t.Fatalf("expected %d listed posts, got %d", len(SamplePosts), len(posts))
	}
}

func TestRegisterToleratesExistingAccount(t *testing.T) {
	api := newAPI(t)
	client := NewClient(api.URL)

	for i := 0; i < 2; i++ {
		if err := client.Register(context.Background(), "writer", "Writer1234"); err != nil {
			t.Fatalf("register attempt %d: %v", i+1, err)
		}
	}
}

func TestRunReportsLoginFailure(t *testing.T) {
	api := newAPI(t)

	_, err := Run(context.Background(), NewClient(api.URL), Options{
		Username: "nobody",
		Password: "Nobody1234",
		Posts:    SamplePosts[:1],
	}, nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.Status != http.StatusUnauthorized || statusErr.Message != sanitize.MessageBadCredentials {
		t.Fatalf("unexpected failure: %+v", statusErr)
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus in chain")
	}
}

func TestRunStopsAtRejectedPost(t *testing.T) {
	api := newAPI(t)

	summary, err := Run(context.Background(), NewClient(api.URL), Options{
		Username: "writer",
		Password: "Writer1234",
		Register: true,
		Posts: []SamplePost{
			SamplePosts[0],
			{Title: "", Content: "body", Tags: []string{"Backend"}},
			SamplePosts[1],
		},
	}, nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 status error, got %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("expected one created post before failure, got %d", summary.Created)
	}
}
