package github

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

// isRetryable reports whether err is a transient upstream failure worth
// another attempt.
func isRetryable(err error) bool {
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	switch httpErr.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsRateLimited reports whether err is a rate-limit or abuse-detection
// response.
func IsRateLimited(err error) bool {
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusForbidden || httpErr.StatusCode == http.StatusTooManyRequests
}

// IsAuthError checks if an error indicates an authentication issue.
// This is used to detect when GitHub API calls fail due to missing or
// invalid credentials, so the CLI can point at the token setup instead of
// dumping a raw HTTP error.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
		return true
	}
	lowerMsg := strings.ToLower(err.Error())
	return strings.Contains(lowerMsg, "gh_token") ||
		strings.Contains(lowerMsg, "github_token") ||
		strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "not logged into") ||
		strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "bad credentials") ||
		strings.Contains(lowerMsg, "permission denied")
}

// rateLimitHint builds a human wait hint from the X-RateLimit-Reset header,
// or returns "" when the header is absent or unparseable.
func rateLimitHint(headers http.Header) string {
	reset := headers.Get("X-RateLimit-Reset")
	if reset == "" {
		return ""
	}
	epoch, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return ""
	}
	wait := time.Until(time.Unix(epoch, 0))
	if wait < 0 {
		wait = 0
	}
	return fmt.Sprintf("resets in %s", wait.Round(time.Second))
}
