// Package github wraps the GitHub REST and GraphQL APIs behind the handful of
// operations the generator needs: the profile stats query, contribution
// calendars, repository listings, and the per-repo contributor stats that
// feed the lines-of-code totals. All calls go through a shared retry policy
// and a per-operation query counter so a run can report how many API calls
// it spent.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/tmih06/profilegen/pkg/logger"
)

var githubLog = logger.New("github:client")

const maxAttempts = 3

// retryWaitBase scales the wait between retry attempts: attempt n waits
// n*retryWaitBase. Tests shrink it.
var retryWaitBase = 2 * time.Second

// graphQLDoer is the slice of go-gh's GraphQL client the operations use.
type graphQLDoer interface {
	DoWithContext(ctx context.Context, query string, variables map[string]interface{}, response interface{}) error
}

// restRequester is the slice of go-gh's REST client the operations use. Raw
// responses are needed because contributor stats distinguish 200/202/204.
type restRequester interface {
	RequestWithContext(ctx context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

// Client is a GitHub API client scoped to one generator run.
type Client struct {
	gql  graphQLDoer
	rest restRequester

	mu      sync.Mutex
	queries map[string]int
}

// NewClient builds a client authenticated with token against the resolved
// GitHub host.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("no GitHub token found: set ACCESS_TOKEN, GH_TOKEN, or GITHUB_TOKEN")
	}
	opts := api.ClientOptions{
		AuthToken: token,
		Host:      ResolveHost(),
	}
	gql, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}
	rest, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}
	return newClientWith(gql, rest), nil
}

func newClientWith(gql graphQLDoer, rest restRequester) *Client {
	return &Client{
		gql:     gql,
		rest:    rest,
		queries: make(map[string]int),
	}
}

// ResolveHost returns the GitHub hostname from environment variables.
// It checks GITHUB_SERVER_URL first (GitHub Actions standard),
// then falls back to GH_HOST (gh CLI standard),
// and finally defaults to github.com
func ResolveHost() string {
	host := os.Getenv("GITHUB_SERVER_URL")
	if host == "" {
		host = os.Getenv("GH_HOST")
	}
	if host == "" {
		githubLog.Print("Using default GitHub host: github.com")
		return "github.com"
	}
	githubLog.Printf("Resolved GitHub host: %s", host)

	// go-gh wants a bare hostname
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}

// countQuery records one issued API request under the operation name.
func (c *Client) countQuery(operation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[operation]++
}

// QueryCount returns the total number of API requests issued so far,
// including retry attempts.
func (c *Client) QueryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.queries {
		total += n
	}
	return total
}

// QueryCounts returns the per-operation request counts as "name=count"
// pairs sorted by name.
func (c *Client) QueryCounts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	pairs := make([]string, 0, len(c.queries))
	for name, n := range c.queries {
		pairs = append(pairs, fmt.Sprintf("%s=%d", name, n))
	}
	sort.Strings(pairs)
	return pairs
}

// withRetry runs fn up to maxAttempts times, retrying transient upstream
// failures (HTTP 502/503/504) with growing waits. Everything else fails on
// the first attempt.
func (c *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == maxAttempts {
			return c.describeError(operation, err)
		}

		wait := time.Duration(attempt) * retryWaitBase
		githubLog.Printf("Attempt %d of %d for %s failed (%v). Retrying in %s...", attempt, maxAttempts, operation, err, wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.describeError(operation, lastErr)
}

// doGraphQL issues one GraphQL query through the retry policy, binding the
// data payload into response.
func (c *Client) doGraphQL(ctx context.Context, operation, query string, variables map[string]interface{}, response interface{}) error {
	return c.withRetry(ctx, operation, func() error {
		c.countQuery(operation)
		return c.gql.DoWithContext(ctx, query, variables, response)
	})
}

// doREST issues one REST request through the retry policy and returns the
// raw response. The caller owns the body. Non-2xx statuses surface as
// *api.HTTPError from go-gh.
func (c *Client) doREST(ctx context.Context, operation, method, path string) (*http.Response, error) {
	var resp *http.Response
	err := c.withRetry(ctx, operation, func() error {
		c.countQuery(operation)
		r, reqErr := c.rest.RequestWithContext(ctx, method, path, nil)
		if reqErr != nil {
			return reqErr
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// describeError wraps err with the operation name, turning rate-limit
// responses into an actionable message.
func (c *Client) describeError(operation string, err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusForbidden, http.StatusTooManyRequests:
			if hint := rateLimitHint(httpErr.Headers); hint != "" {
				return fmt.Errorf("%s: rate limit or abuse detection triggered (HTTP %d, %s): %w", operation, httpErr.StatusCode, hint, err)
			}
			return fmt.Errorf("%s: rate limit or abuse detection triggered (HTTP %d): %w", operation, httpErr.StatusCode, err)
		}
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
