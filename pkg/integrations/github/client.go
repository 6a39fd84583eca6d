// Package github mirrors the feed document into a GitHub repository via
// the contents API. The GCS object stays the system of record; the
// mirror is a convenience copy.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	httputil "github.com/deepdivedevotions/publisher/pkg/infrastructure/http"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to one repository's contents API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	repo       string
	branch     string
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithBranch overrides the target branch.
func WithBranch(branch string) Option {
	return func(c *Client) {
		if branch != "" {
			c.branch = branch
		}
	}
}

// NewClient builds a client authenticated with a personal access token.
func NewClient(ctx context.Context, token, repo string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &Client{
		httpClient: oauth2.NewClient(ctx, ts),
		baseURL:    defaultBaseURL,
		repo:       repo,
		branch:     "main",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PutFile creates or updates one file on the configured branch. Updating
// requires the current blob SHA, so the existing file is looked up first;
// a 404 there means create.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, message string) error {
	sha, err := c.fileSHA(ctx, path)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal contents payload: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github put %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := httputil.ParseErrorResponse(resp); err != nil {
		return fmt.Errorf("github put %s: %w", path, err)
	}
	return nil
}

func (c *Client) fileSHA(ctx context.Context, path string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", c.baseURL, c.repo, path, c.branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if err := httputil.ParseErrorResponse(resp); err != nil {
		return "", fmt.Errorf("github get %s: %w", path, err)
	}

	var meta struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", fmt.Errorf("decode contents response: %w", err)
	}
	return meta.SHA, nil
}
