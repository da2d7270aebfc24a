// Package seed fills a running API with sample posts through its public HTTP
// surface.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"scribe/internal/shared/sanitize"
)

// ErrUnexpectedStatus is wrapped by every non-2xx API response.
var ErrUnexpectedStatus = errors.New("unexpected api status")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) Client {
	return Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates the account. An existing account is not an error.
func (c Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{
		"username":        username,
		"password":        password,
		"confirmPassword": password,
	}
	err := c.post(ctx, "/auth/register", "", body, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusConflict {
		return nil
	}
	return err
}

func (c Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/auth/login", "", map[string]string{"username": username, "password": password}, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login response carried no access token")
	}
	return out.AccessToken, nil
}

func (c Client) CreatePost(ctx context.Context, token string, post SamplePost) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/posts", token, post, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// StatusError carries the sanitized message of a failed API call.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

func (c Client) post(ctx context.Context, path, token string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure sanitize.ErrorPayload
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return &StatusError{Status: resp.StatusCode, Message: failure.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type Options struct {
	Username string
	Password string
	Register bool
	Delay    time.Duration
	Posts    []SamplePost
}

type Summary struct {
	Created   int
	TagCounts map[string]int
}

// Run logs in, optionally registering first, and creates each post in order.
// It stops at the first failed post.
func Run(ctx context.Context, client Client, opts Options, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	posts := opts.Posts
	if posts == nil {
		posts = SamplePosts
	}

	if opts.Register {
		if err := client.Register(ctx, opts.Username, opts.Password); err != nil {
			return Summary{}, fmt.Errorf("register %s: %w", opts.Username, err)
		}
	}
	token, err := client.Login(ctx, opts.Username, opts.Password)
	if err != nil {
		return Summary{}, fmt.Errorf("login %s: %w", opts.Username, err)
	}
	logger.Info("seed login succeeded",
		"event", "seed_login_succeeded",
		"module", "internal/app/seed",
		"layer", "platform",
		"username", opts.Username,
	)

	summary := Summary{TagCounts: make(map[string]int)}
	for i, post := range posts {
		id, err := client.CreatePost(ctx, token, post)
		if err != nil {
			return summary, fmt.Errorf("create post %q: %w", post.Title, err)
		}
		summary.Created++
		for _, tag := range post.Tags {
			summary.TagCounts[tag]++
		}
		logger.Info("seed post created",
			"event", "seed_post_created",
			"module", "internal/app/seed",
			"layer", "platform",
			"post_id", id,
			"position", i+1,
			"total", len(posts),
		)

		if opts.Delay > 0 && i < len(posts)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}
	return summary, nil
}

// SortedTags returns the tag distribution ordered by tag name.
func (s Summary) SortedTags() []string {
	tags := make([]string, 0, len(s.TagCounts))
	for tag := range s.TagCounts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
