package postservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	authorization "scribe/contexts/identity-access/authorization-service"
	postservice "scribe/contexts/publishing/post-service"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/ports"
	httptransport "scribe/contexts/publishing/post-service/transport/http"
	authzv1 "scribe/contracts/gen/authz/v1"
	eventsv1 "scribe/contracts/gen/events/v1"
)

var (
	alice = authzv1.Actor{ID: "u-alice", Username: "alice"}
	bob   = authzv1.Actor{ID: "u-bob", Username: "bob"}
	admin = authzv1.Actor{ID: "u-admin", Username: "admin"}
)

func newTestModule() postservice.Module {
	authz := authorization.NewModule(authorization.Dependencies{AdminUsernames: []string{"admin", "dev-admin"}})
	return postservice.NewInMemoryModule(authz.Authorizer, nil)
}

func createPost(t *testing.T, module postservice.Module, actor authzv1.Actor, title string) httptransport.PostResponse {
	t.Helper()
	post, err := module.Handler.CreatePostHandler(context.Background(), actor, httptransport.CreatePostRequest{
		Title:   title,
		Content: "Hello world",
		Tags:    []string{"go"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func ptr[T any](v T) *T { return &v }

func TestCreatePostSetsAuthorFromActor(t *testing.T) {
	module := newTestModule()
	post := createPost(t, module, alice, "First")

	if post.AuthorID != alice.ID || post.Author.ID != alice.ID || post.Author.Username != "alice" {
		t.Fatalf("expected alice as author, got %+v", post)
	}
	if post.ID == "" || post.CreatedAt.IsZero() || !post.CreatedAt.Equal(post.UpdatedAt) {
		t.Fatalf("expected id and timestamps, got %+v", post)
	}
}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	module := newTestModule()
	_, err := module.Handler.CreatePostHandler(context.Background(), authzv1.Actor{}, httptransport.CreatePostRequest{
		Title:   "x",
		Content: "y",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestCreatePostRejectsInvalidBody(t *testing.T) {
	module := newTestModule()
	_, err := module.Handler.CreatePostHandler(context.Background(), alice, httptransport.CreatePostRequest{Content: "y"})
	if !errors.Is(err, domainerrors.ErrInvalidPost) {
		t.Fatalf("expected invalid post, got %v", err)
	}
}

func TestListPostsNewestFirstAndPublic(t *testing.T) {
	module := newTestModule()
	createPost(t, module, alice, "one")
	createPost(t, module, bob, "two")
	createPost(t, module, alice, "three")

	posts, err := module.Handler.ListPostsHandler(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].Title != "three" || posts[2].Title != "one" {
		t.Fatalf("expected newest first, got %q..%q", posts[0].Title, posts[2].Title)
	}
}

func TestGetPostNotFound(t *testing.T) {
	module := newTestModule()
	if _, err := module.Handler.GetPostHandler(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePostOwnershipRules(t *testing.T) {
	ctx := context.Background()
	module := newTestModule()
	post := createPost(t, module, alice, "Original")

	if _, err := module.Handler.UpdatePostHandler(ctx, bob, post.ID, httptransport.UpdatePostRequest{Title: ptr("Hijack")}); !errors.Is(err, domainerrors.ErrUpdateForbidden) {
		t.Fatalf("expected non-owner update forbidden, got %v", err)
	}
	unchanged, err := module.Handler.GetPostHandler(ctx, post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Title != "Original" {
		t.Fatalf("denied update must not change the post, got %q", unchanged.Title)
	}

	updated, err := module.Handler.UpdatePostHandler(ctx, alice, post.ID, httptransport.UpdatePostRequest{Title: ptr("Owner edit")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Owner edit" || updated.Content != "Hello world" || len(updated.Tags) != 1 {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	byAdmin, err := module.Handler.UpdatePostHandler(ctx, admin, post.ID, httptransport.UpdatePostRequest{Tags: ptr([]string{"a", "b"})})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if byAdmin.AuthorID != alice.ID || len(byAdmin.Tags) != 2 {
		t.Fatalf("admin update must keep author, got %+v", byAdmin)
	}
}

func TestUpdatePostMissingIsNotFoundBeforePolicy(t *testing.T) {
	module := newTestModule()
	_, err := module.Handler.UpdatePostHandler(context.Background(), bob, "missing", httptransport.UpdatePostRequest{Title: ptr("x")})
	if !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePostRejectsEmptyTitle(t *testing.T) {
	module := newTestModule()
	post := createPost(t, module, alice, "Original")
	_, err := module.Handler.UpdatePostHandler(context.Background(), alice, post.ID, httptransport.UpdatePostRequest{Title: ptr("")})
	if !errors.Is(err, domainerrors.ErrInvalidPost) {
		t.Fatalf("expected invalid post, got %v", err)
	}
}

func TestDeletePostOwnershipRules(t *testing.T) {
	ctx := context.Background()
	module := newTestModule()
	first := createPost(t, module, alice, "mine")
	second := createPost(t, module, alice, "also mine")

	if _, err := module.Handler.DeletePostHandler(ctx, bob, first.ID); !errors.Is(err, domainerrors.ErrDeleteForbidden) {
		t.Fatalf("expected delete forbidden, got %v", err)
	}

	resp, err := module.Handler.DeletePostHandler(ctx, alice, first.ID)
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if resp.Message != "Post deleted successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if _, err := module.Handler.DeletePostHandler(ctx, admin, second.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := module.Handler.DeletePostHandler(ctx, alice, first.ID); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestMutationsAppendOutboxEvents(t *testing.T) {
	ctx := context.Background()
	module := newTestModule()
	post := createPost(t, module, alice, "evented")
	if _, err := module.Handler.UpdatePostHandler(ctx, alice, post.ID, httptransport.UpdatePostRequest{Content: ptr("new body")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := module.Handler.UpdatePostHandler(ctx, bob, post.ID, httptransport.UpdatePostRequest{Content: ptr("nope")}); err == nil {
		t.Fatal("expected denied update")
	}
	if _, err := module.Handler.DeletePostHandler(ctx, alice, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	want := []string{eventsv1.EventPostCreated, eventsv1.EventPostUpdated, eventsv1.EventPostDeleted}
	if len(pending) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(pending))
	}
	for i, message := range pending {
		if message.EventType != want[i] || message.PartitionKey != post.ID {
			t.Fatalf("event %d: unexpected %+v", i, message)
		}
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []ports.EventEnvelope
	fail   error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesAndMarksSent(t *testing.T) {
	ctx := context.Background()
	module := newTestModule()
	post := createPost(t, module, alice, "relayed")

	publisher := &recordingPublisher{}
	workers := postservice.NewWorkers(postservice.WorkerDependencies{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	})

	sent, err := workers.Relay.RunOnce(ctx)
	if err != nil {
		t.Fatalf("relay: %v", err)
	}
	if sent != 1 || len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", sent)
	}
	if publisher.topics[0] != "blog.posts" {
		t.Fatalf("expected default topic, got %q", publisher.topics[0])
	}
	envelope := publisher.events[0]
	if envelope.EventType != eventsv1.EventPostCreated || envelope.ActorID != alice.ID || envelope.SourceService != "post-service" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	var data map[string]any
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["post_id"] != post.ID || data["title"] != "relayed" {
		t.Fatalf("unexpected data %v", data)
	}

	sent, err = workers.Relay.RunOnce(ctx)
	if err != nil || sent != 0 {
		t.Fatalf("expected nothing left to relay, got %d, %v", sent, err)
	}
}

func TestOutboxRelayKeepsRowsOnPublishFailure(t *testing.T) {
	ctx := context.Background()
	module := newTestModule()
	createPost(t, module, alice, "stuck")

	workers := postservice.NewWorkers(postservice.WorkerDependencies{
		Outbox:    module.Store,
		Publisher: &recordingPublisher{fail: errors.New("broker down")},
	})
	if _, err := workers.Relay.RunOnce(ctx); err == nil {
		t.Fatal("expected publish failure")
	}
	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected row to stay pending, got %d", len(pending))
	}
}
