package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/sourcegraph/conc/iter"
	"github.com/tmih06/profilegen/pkg/envutil"
	"github.com/tmih06/profilegen/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var locLog = logger.New("github:loc")

var locPrinter = message.NewPrinter(language.English)

// DefaultLOCWorkers is the default number of parallel contributor-stats
// fetches. PROFILEGEN_CONCURRENCY overrides it.
const DefaultLOCWorkers = 4

// statAttempts bounds how long a repo is polled while GitHub is still
// computing its contributor stats (HTTP 202).
const statAttempts = 3

// Repo statuses reported in progress lines and results.
const (
	StatusOK        = "ok"
	StatusComputing = "computing..."
	StatusEmpty     = "empty"
)

// RepoLines is the lines-of-code result for one repository.
type RepoLines struct {
	Name      string `json:"name"`
	Private   bool   `json:"private"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Status    string `json:"status"`
}

// DisplayName masks private repository names in user-facing output.
func (r RepoLines) DisplayName() string {
	if r.Private {
		return "***"
	}
	return r.Name
}

func (r RepoLines) visibility() string {
	if r.Private {
		return "private"
	}
	return "public"
}

// LinesOfCode aggregates the scan across all owned repositories.
type LinesOfCode struct {
	Additions    int         `json:"additions"`
	Deletions    int         `json:"deletions"`
	Repos        []RepoLines `json:"repos"`
	ForksSkipped int         `json:"forks_skipped"`
	ListFailed   bool        `json:"list_failed"`
}

// Net returns additions minus deletions.
func (l *LinesOfCode) Net() int {
	return l.Additions - l.Deletions
}

// LOCOptions controls the lines-of-code scan.
type LOCOptions struct {
	// IncludePrivate lists repositories through the authenticated
	// user/repos endpoint so private ones are counted too.
	IncludePrivate bool
	// Workers bounds the parallel per-repo fetches. Zero means
	// DefaultLOCWorkers, overridable via PROFILEGEN_CONCURRENCY.
	Workers int
	// Progress receives one line per scanned repository, in completion
	// order. Optional.
	Progress func(line string)
}

type restRepo struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	Fork     bool   `json:"fork"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type contributorStats struct {
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	Weeks []struct {
		Additions int `json:"a"`
		Deletions int `json:"d"`
	} `json:"weeks"`
}

// LinesOfCode walks login's owned repositories and sums the weekly
// additions/deletions attributed to login in each repository's contributor
// stats. Forks are skipped. A failing repository listing degrades to zero
// totals instead of aborting the run.
func (c *Client) LinesOfCode(ctx context.Context, login string, opts LOCOptions) (*LinesOfCode, error) {
	result := &LinesOfCode{}

	repos, err := c.listOwnedRepos(ctx, login, opts.IncludePrivate)
	if err != nil {
		locLog.Printf("Repository listing failed, degrading to zero totals: %v", err)
		result.ListFailed = true
		return result, nil
	}

	scanned := make([]restRepo, 0, len(repos))
	for _, repo := range repos {
		if repo.Fork {
			result.ForksSkipped++
			continue
		}
		scanned = append(scanned, repo)
	}
	locLog.Printf("Scanning %d repositories (%d forks skipped)", len(scanned), result.ForksSkipped)

	workers := opts.Workers
	if workers == 0 {
		workers = envutil.GetIntFromEnv("PROFILEGEN_CONCURRENCY", DefaultLOCWorkers, 1, 32, locLog)
	}

	var progressMu sync.Mutex
	done := 0
	mapper := iter.Mapper[restRepo, RepoLines]{MaxGoroutines: workers}
	result.Repos = mapper.Map(scanned, func(repo *restRepo) RepoLines {
		lines := c.repoLines(ctx, login, *repo)
		if opts.Progress != nil {
			progressMu.Lock()
			done++
			opts.Progress(fmt.Sprintf("[%d/%d] %s (%s): +%s / -%s [%s]",
				done, len(scanned), lines.DisplayName(), lines.visibility(),
				locPrinter.Sprintf("%d", lines.Additions), locPrinter.Sprintf("%d", lines.Deletions), lines.Status))
			progressMu.Unlock()
		}
		return lines
	})

	for _, repo := range result.Repos {
		result.Additions += repo.Additions
		result.Deletions += repo.Deletions
	}
	return result, nil
}

// listOwnedRepos pages through the repository listing, following RFC 5988
// Link headers. Private repositories require the authenticated endpoint.
func (c *Client) listOwnedRepos(ctx context.Context, login string, includePrivate bool) ([]restRepo, error) {
	path := fmt.Sprintf("users/%s/repos?per_page=100&type=owner", login)
	if includePrivate {
		path = "user/repos?per_page=100&affiliation=owner"
	}

	var repos []restRepo
	for path != "" {
		resp, err := c.doREST(ctx, "loc_repo_list", http.MethodGet, path)
		if err != nil {
			return nil, err
		}
		var page []restRepo
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode repository list: %w", decodeErr)
		}
		repos = append(repos, page...)
		path = nextPageURL(resp.Header)
	}
	return repos, nil
}

// repoLines fetches one repository's contributor stats and extracts login's
// additions and deletions. GitHub answers 202 while the stats are being
// computed; a few immediate re-requests usually land a 200.
func (c *Client) repoLines(ctx context.Context, login string, repo restRepo) RepoLines {
	lines := RepoLines{Name: repo.FullName, Private: repo.Private}
	path := fmt.Sprintf("repos/%s/stats/contributors", repo.FullName)

	for attempt := 1; attempt <= statAttempts; attempt++ {
		resp, err := c.doREST(ctx, "loc_contributor_stats", http.MethodGet, path)
		if err != nil {
			lines.Status = fmt.Sprintf("error(%d)", httpStatusOf(err))
			return lines
		}

		switch resp.StatusCode {
		case http.StatusAccepted:
			closeBody(resp)
			lines.Status = StatusComputing
			continue
		case http.StatusNoContent:
			closeBody(resp)
			lines.Status = StatusEmpty
			return lines
		}

		var stats []contributorStats
		decodeErr := json.NewDecoder(resp.Body).Decode(&stats)
		resp.Body.Close()
		if decodeErr != nil {
			locLog.Printf("Failed to decode contributor stats for %s: %v", lines.DisplayName(), decodeErr)
			lines.Status = "error(decode)"
			return lines
		}

		for _, contributor := range stats {
			if contributor.Author.Login != login {
				continue
			}
			for _, week := range contributor.Weeks {
				lines.Additions += week.Additions
				lines.Deletions += week.Deletions
			}
		}
		lines.Status = StatusOK
		return lines
	}
	return lines
}

func closeBody(resp *http.Response) {
	if resp.Body != nil {
		resp.Body.Close()
	}
}

// httpStatusOf digs the HTTP status out of a wrapped API error, or 0.
func httpStatusOf(err error) int {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

var linkNextRE = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="next"`)

// nextPageURL extracts the rel="next" target from a Link header, or "".
func nextPageURL(headers http.Header) string {
	for _, link := range headers.Values("Link") {
		if match := linkNextRE.FindStringSubmatch(link); match != nil {
			return match[1]
		}
	}
	return ""
}
