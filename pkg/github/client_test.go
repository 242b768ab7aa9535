//go:build !integration

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraphQL scripts DoWithContext responses per call number.
type fakeGraphQL struct {
	mu      sync.Mutex
	calls   int
	respond func(call int, query string, vars map[string]interface{}, response interface{}) error
}

func (f *fakeGraphQL) DoWithContext(_ context.Context, query string, vars map[string]interface{}, response interface{}) error {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.respond(call, query, vars, response)
}

func (f *fakeGraphQL) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func bindJSON(t *testing.T, response interface{}, payload string) error {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(payload), response))
	return nil
}

func fastRetries(t *testing.T) {
	t.Helper()
	saved := retryWaitBase
	retryWaitBase = time.Millisecond
	t.Cleanup(func() { retryWaitBase = saved })
}

const userStatsPayload = `{
  "user": {
    "name": "",
    "login": "tmih06",
    "createdAt": "2020-01-15T00:00:00Z",
    "followers": {"totalCount": 10},
    "following": {"totalCount": 5},
    "repositories": {
      "totalCount": 3,
      "totalDiskUsage": 2048,
      "nodes": [
        {"licenseInfo": {"spdxId": "MIT"}, "releases": {"totalCount": 1}, "stargazerCount": 4, "forkCount": 2, "watchers": {"totalCount": 3}},
        {"licenseInfo": {"spdxId": "MIT"}, "releases": {"totalCount": 0}, "stargazerCount": 1, "forkCount": 0, "watchers": {"totalCount": 1}},
        {"licenseInfo": null, "releases": {"totalCount": 2}, "stargazerCount": 0, "forkCount": 1, "watchers": {"totalCount": 0}}
      ]
    },
    "packages": {"totalCount": 0},
    "organizations": {"totalCount": 1},
    "sponsoring": {"totalCount": 0},
    "sponsors": {"totalCount": 2},
    "starredRepositories": {"totalCount": 7},
    "watching": {"totalCount": 2},
    "issues": {"totalCount": 12},
    "pullRequests": {"totalCount": 30},
    "repositoriesContributedTo": {"totalCount": 4}
  }
}`

func TestUserStatsDerivations(t *testing.T) {
	gql := &fakeGraphQL{respond: func(_ int, _ string, vars map[string]interface{}, response interface{}) error {
		assert.Equal(t, "tmih06", vars["login"])
		return bindJSON(t, response, userStatsPayload)
	}}
	client := newClientWith(gql, nil)

	stats, err := client.UserStats(context.Background(), "tmih06")
	require.NoError(t, err)

	assert.Equal(t, "tmih06", stats.Name, "display name should fall back to the login")
	assert.Equal(t, "MIT", stats.PreferredLicense)
	assert.Equal(t, 3, stats.RepoCount)
	assert.Equal(t, 5, stats.Stargazers, "stargazers should sum across repos")
	assert.Equal(t, 3, stats.Forks)
	assert.Equal(t, 4, stats.Watchers)
	assert.Equal(t, 3, stats.Releases)
	assert.InDelta(t, 2.0, stats.DiskUsageMiB(), 0.001)
	assert.Equal(t, 10, stats.Followers)
	assert.Equal(t, 30, stats.PullRequests)
	assert.Equal(t, 1, client.QueryCount())
}

func TestUserStatsWithoutLicenses(t *testing.T) {
	payload := `{"user": {"name": "Octo", "login": "octocat", "createdAt": "2020-01-15T00:00:00Z",
	  "repositories": {"totalCount": 1, "totalDiskUsage": 0, "nodes": [
	    {"licenseInfo": null, "releases": {"totalCount": 0}, "stargazerCount": 0, "forkCount": 0, "watchers": {"totalCount": 0}}
	  ]}}}`
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, response interface{}) error {
		return bindJSON(t, response, payload)
	}}
	client := newClientWith(gql, nil)

	stats, err := client.UserStats(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "None", stats.PreferredLicense)
	assert.Equal(t, "Octo", stats.Name, "a set display name should be kept")
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	fastRetries(t)
	gql := &fakeGraphQL{respond: func(call int, _ string, _ map[string]interface{}, response interface{}) error {
		if call < 3 {
			return &api.HTTPError{StatusCode: http.StatusBadGateway, Message: "Bad Gateway"}
		}
		return bindJSON(t, response, userStatsPayload)
	}}
	client := newClientWith(gql, nil)

	_, err := client.UserStats(context.Background(), "tmih06")
	require.NoError(t, err)
	assert.Equal(t, 3, gql.callCount(), "two 502s should be retried")
	assert.Equal(t, 3, client.QueryCount(), "every issued request counts")
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	fastRetries(t)
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, _ interface{}) error {
		return &api.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "Service Unavailable"}
	}}
	client := newClientWith(gql, nil)

	_, err := client.UserStats(context.Background(), "tmih06")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_stats failed")
	assert.Equal(t, maxAttempts, gql.callCount())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, _ interface{}) error {
		return &api.HTTPError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}}
	client := newClientWith(gql, nil)

	_, err := client.UserStats(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 1, gql.callCount(), "a 404 should fail immediately")
}

func TestRateLimitErrorMessage(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-RateLimit-Reset", fmt.Sprint(time.Now().Add(90*time.Second).Unix()))
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, _ interface{}) error {
		return &api.HTTPError{StatusCode: http.StatusForbidden, Message: "rate limited", Headers: headers}
	}}
	client := newClientWith(gql, nil)

	_, err := client.UserStats(context.Background(), "tmih06")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit or abuse detection triggered")
	assert.Contains(t, err.Error(), "resets in")
	assert.True(t, IsRateLimited(err))
	assert.Equal(t, 1, gql.callCount(), "rate limits should not be hammered with retries")
}

func TestContributionYearsSorted(t *testing.T) {
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, response interface{}) error {
		return bindJSON(t, response, `{"user": {"contributionsCollection": {"contributionYears": [2024, 2020, 2022]}}}`)
	}}
	client := newClientWith(gql, nil)

	years, err := client.ContributionYears(context.Background(), "tmih06")
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2022, 2024}, years)
}

func TestContributionCalendar(t *testing.T) {
	payload := `{"user": {"contributionsCollection": {
	  "totalCommitContributions": 40,
	  "totalIssueContributions": 3,
	  "totalPullRequestContributions": 7,
	  "totalPullRequestReviewContributions": 2,
	  "contributionCalendar": {
	    "totalContributions": 52,
	    "weeks": [
	      {"contributionDays": [
	        {"date": "2024-01-01", "contributionCount": 4},
	        {"date": "2024-01-02", "contributionCount": 0}
	      ]},
	      {"contributionDays": [
	        {"date": "2024-01-08", "contributionCount": 9}
	      ]}
	    ]
	  }
	}}}`
	var gotFrom, gotTo interface{}
	gql := &fakeGraphQL{respond: func(_ int, _ string, vars map[string]interface{}, response interface{}) error {
		gotFrom = vars["from"]
		gotTo = vars["to"]
		return bindJSON(t, response, payload)
	}}
	client := newClientWith(gql, nil)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	r, err := client.ContributionCalendar(context.Background(), "tmih06", from, to)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z", gotFrom)
	assert.Equal(t, "2024-12-31T23:59:59Z", gotTo)
	assert.Equal(t, 52, r.Total)
	assert.Equal(t, 40, r.Commits)
	assert.Equal(t, 3, r.Issues)
	assert.Equal(t, 7, r.PullRequests)
	assert.Equal(t, 2, r.Reviews)
	require.Len(t, r.Days, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Days[0].Date)
	assert.Equal(t, 9, r.Days[2].Count)
}

func TestViewerAndUser(t *testing.T) {
	gql := &fakeGraphQL{respond: func(_ int, query string, vars map[string]interface{}, response interface{}) error {
		if vars == nil {
			return bindJSON(t, response, `{"viewer": {"id": "U_1", "login": "tmih06", "name": "Minh", "createdAt": "2020-01-15T00:00:00Z", "followers": {"totalCount": 8}}}`)
		}
		return bindJSON(t, response, `{"user": {"id": "U_2", "login": "octocat", "name": "", "createdAt": "2011-01-25T00:00:00Z", "followers": {"totalCount": 9000}}}`)
	}}
	client := newClientWith(gql, nil)

	viewer, err := client.Viewer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tmih06", viewer.Login)
	assert.Equal(t, 8, viewer.Followers)

	user, err := client.User(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "U_2", user.ID)
	assert.Equal(t, 9000, user.Followers)
}

func TestRepositoryOverviewPagination(t *testing.T) {
	var secondCursor string
	gql := &fakeGraphQL{respond: func(call int, _ string, vars map[string]interface{}, response interface{}) error {
		if call == 1 {
			return bindJSON(t, response, `{"user": {"repositories": {
			  "totalCount": 3,
			  "edges": [
			    {"node": {"nameWithOwner": "tmih06/alpha", "stargazers": {"totalCount": 3}}},
			    {"node": {"nameWithOwner": "tmih06/beta", "stargazers": {"totalCount": 4}}}
			  ],
			  "pageInfo": {"endCursor": "c1", "hasNextPage": true}
			}}}`)
		}
		if cursor, ok := vars["cursor"].(*string); ok && cursor != nil {
			secondCursor = *cursor
		}
		return bindJSON(t, response, `{"user": {"repositories": {
		  "totalCount": 3,
		  "edges": [
		    {"node": {"nameWithOwner": "tmih06/gamma", "stargazers": {"totalCount": 5}}}
		  ],
		  "pageInfo": {"endCursor": "c2", "hasNextPage": false}
		}}}`)
	}}
	client := newClientWith(gql, nil)

	overview, err := client.RepositoryOverview(context.Background(), "tmih06", []string{"OWNER"})
	require.NoError(t, err)
	assert.Equal(t, 3, overview.RepoCount)
	assert.Equal(t, 12, overview.TotalStars)
	assert.Equal(t, "c1", secondCursor, "the second page should resume from the first page's cursor")
	assert.Equal(t, 2, gql.callCount())
}

func TestQueryCounts(t *testing.T) {
	gql := &fakeGraphQL{respond: func(_ int, _ string, _ map[string]interface{}, response interface{}) error {
		return bindJSON(t, response, `{"user": {"contributionsCollection": {"contributionYears": [2024]}}}`)
	}}
	client := newClientWith(gql, nil)

	_, err := client.ContributionYears(context.Background(), "tmih06")
	require.NoError(t, err)
	_, err = client.ContributionYears(context.Background(), "tmih06")
	require.NoError(t, err)

	assert.Equal(t, 2, client.QueryCount())
	assert.Equal(t, []string{"contribution_years=2"}, client.QueryCounts())
}

func TestResolveHost(t *testing.T) {
	tests := []struct {
		name      string
		serverURL string
		ghHost    string
		want      string
	}{
		{name: "default", want: "github.com"},
		{name: "server url wins", serverURL: "https://github.example.com/", ghHost: "other.example.com", want: "github.example.com"},
		{name: "gh host fallback", ghHost: "ghe.internal", want: "ghe.internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_SERVER_URL", tt.serverURL)
			t.Setenv("GH_HOST", tt.ghHost)
			assert.Equal(t, tt.want, ResolveHost())
		})
	}
}

func TestIsAuthError(t *testing.T) {
	assert.False(t, IsAuthError(nil))
	assert.False(t, IsAuthError(fmt.Errorf("boom")))
	assert.True(t, IsAuthError(fmt.Errorf("HTTP 401: Bad credentials")))
	assert.True(t, IsAuthError(&api.HTTPError{StatusCode: http.StatusUnauthorized, Message: "nope"}))
	assert.True(t, IsAuthError(fmt.Errorf("wrap: %w", &api.HTTPError{StatusCode: http.StatusUnauthorized})))
}
