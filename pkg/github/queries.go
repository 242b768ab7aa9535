package github

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// countField matches the GraphQL `{ totalCount }` connection shape.
type countField struct {
	TotalCount int `json:"totalCount"`
}

const userStatsQuery = `
query($login: String!) {
  user(login: $login) {
    name
    login
    createdAt
    followers { totalCount }
    following { totalCount }
    repositories(first: 100, ownerAffiliations: OWNER) {
      totalCount
      totalDiskUsage
      nodes {
        licenseInfo { spdxId }
        releases { totalCount }
        stargazerCount
        forkCount
        watchers { totalCount }
      }
    }
    packages { totalCount }
    organizations { totalCount }
    sponsoring { totalCount }
    sponsors { totalCount }
    starredRepositories { totalCount }
    watching { totalCount }
    issues { totalCount }
    pullRequests { totalCount }
    repositoriesContributedTo { totalCount }
  }
}`

type userStatsResponse struct {
	User struct {
		Name         string    `json:"name"`
		Login        string    `json:"login"`
		CreatedAt    time.Time `json:"createdAt"`
		Followers    countField
		Following    countField
		Repositories struct {
			TotalCount     int `json:"totalCount"`
			TotalDiskUsage int `json:"totalDiskUsage"`
			Nodes          []struct {
				LicenseInfo *struct {
					SpdxID string `json:"spdxId"`
				} `json:"licenseInfo"`
				Releases       countField
				StargazerCount int `json:"stargazerCount"`
				ForkCount      int `json:"forkCount"`
				Watchers       countField
			} `json:"nodes"`
		} `json:"repositories"`
		Packages                  countField
		Organizations             countField
		Sponsoring                countField
		Sponsors                  countField
		StarredRepositories       countField `json:"starredRepositories"`
		Watching                  countField
		Issues                    countField
		PullRequests              countField `json:"pullRequests"`
		RepositoriesContributedTo countField `json:"repositoriesContributedTo"`
	} `json:"user"`
}

// UserStats is the profile-level summary behind the info card.
type UserStats struct {
	Login            string
	Name             string
	CreatedAt        time.Time
	Followers        int
	Following        int
	RepoCount        int
	DiskUsageKiB     int
	PreferredLicense string
	Releases         int
	Stargazers       int
	Forks            int
	Watchers         int
	Packages         int
	Organizations    int
	Sponsoring       int
	Sponsors         int
	Starred          int
	Watching         int
	Issues           int
	PullRequests     int
	ContributedTo    int
}

// DiskUsageMiB returns the owned repositories' disk usage in MiB.
func (s *UserStats) DiskUsageMiB() float64 {
	return float64(s.DiskUsageKiB) / 1024
}

// UserStats fetches the profile summary for login. The display name falls
// back to the login when unset, and the preferred license is the most common
// SPDX id across owned repositories ("None" without any licensed repo).
func (c *Client) UserStats(ctx context.Context, login string) (*UserStats, error) {
	var resp userStatsResponse
	vars := map[string]interface{}{"login": login}
	if err := c.doGraphQL(ctx, "user_stats", userStatsQuery, vars, &resp); err != nil {
		return nil, err
	}

	u := resp.User
	stats := &UserStats{
		Login:         u.Login,
		Name:          u.Name,
		CreatedAt:     u.CreatedAt,
		Followers:     u.Followers.TotalCount,
		Following:     u.Following.TotalCount,
		RepoCount:     u.Repositories.TotalCount,
		DiskUsageKiB:  u.Repositories.TotalDiskUsage,
		Packages:      u.Packages.TotalCount,
		Organizations: u.Organizations.TotalCount,
		Sponsoring:    u.Sponsoring.TotalCount,
		Sponsors:      u.Sponsors.TotalCount,
		Starred:       u.StarredRepositories.TotalCount,
		Watching:      u.Watching.TotalCount,
		Issues:        u.Issues.TotalCount,
		PullRequests:  u.PullRequests.TotalCount,
		ContributedTo: u.RepositoriesContributedTo.TotalCount,
	}
	if stats.Name == "" {
		stats.Name = u.Login
	}

	licenseCounts := make(map[string]int)
	var licenseOrder []string
	for _, node := range u.Repositories.Nodes {
		stats.Releases += node.Releases.TotalCount
		stats.Stargazers += node.StargazerCount
		stats.Forks += node.ForkCount
		stats.Watchers += node.Watchers.TotalCount
		if node.LicenseInfo != nil && node.LicenseInfo.SpdxID != "" {
			if licenseCounts[node.LicenseInfo.SpdxID] == 0 {
				licenseOrder = append(licenseOrder, node.LicenseInfo.SpdxID)
			}
			licenseCounts[node.LicenseInfo.SpdxID]++
		}
	}
	stats.PreferredLicense = "None"
	best := 0
	for _, spdx := range licenseOrder {
		if licenseCounts[spdx] > best {
			best = licenseCounts[spdx]
			stats.PreferredLicense = spdx
		}
	}
	return stats, nil
}

const contributionYearsQuery = `
query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionYears
    }
  }
}`

// ContributionYears returns the years login has contributions in,
// sorted ascending.
func (c *Client) ContributionYears(ctx context.Context, login string) ([]int, error) {
	var resp struct {
		User struct {
			ContributionsCollection struct {
				ContributionYears []int `json:"contributionYears"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	vars := map[string]interface{}{"login": login}
	if err := c.doGraphQL(ctx, "contribution_years", contributionYearsQuery, vars, &resp); err != nil {
		return nil, err
	}
	years := resp.User.ContributionsCollection.ContributionYears
	sorted := make([]int, len(years))
	copy(sorted, years)
	sort.Ints(sorted)
	return sorted, nil
}

const contributionCalendarQuery = `
query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

// ContributionDay is one calendar cell.
type ContributionDay struct {
	Date  time.Time
	Count int
}

// ContributionRange aggregates one from/to window of the contribution
// calendar.
type ContributionRange struct {
	Total        int
	Commits      int
	Issues       int
	PullRequests int
	Reviews      int
	Days         []ContributionDay
}

// ContributionCalendar fetches the calendar for login between from and to
// (inclusive, at most one year apart per the API). Days keep calendar order.
func (c *Client) ContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionRange, error) {
	var resp struct {
		User struct {
			ContributionsCollection struct {
				TotalCommitContributions            int `json:"totalCommitContributions"`
				TotalIssueContributions             int `json:"totalIssueContributions"`
				TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
				TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
				ContributionCalendar                struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date  string `json:"date"`
							Count int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	vars := map[string]interface{}{
		"login": login,
		"from":  from.UTC().Format(time.RFC3339),
		"to":    to.UTC().Format(time.RFC3339),
	}
	if err := c.doGraphQL(ctx, "contribution_calendar", contributionCalendarQuery, vars, &resp); err != nil {
		return nil, err
	}

	coll := resp.User.ContributionsCollection
	r := &ContributionRange{
		Total:        coll.ContributionCalendar.TotalContributions,
		Commits:      coll.TotalCommitContributions,
		Issues:       coll.TotalIssueContributions,
		PullRequests: coll.TotalPullRequestContributions,
		Reviews:      coll.TotalPullRequestReviewContributions,
	}
	for _, week := range coll.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse("2006-01-02", day.Date)
			if err != nil {
				return nil, fmt.Errorf("failed to parse calendar date %q: %w", day.Date, err)
			}
			r.Days = append(r.Days, ContributionDay{Date: date, Count: day.Count})
		}
	}
	return r, nil
}

const viewerQuery = `
query {
  viewer {
    id
    login
    name
    createdAt
    followers { totalCount }
  }
}`

const userQuery = `
query($login: String!) {
  user(login: $login) {
    id
    login
    name
    createdAt
    followers { totalCount }
  }
}`

// Identity is a small user record used for token and login checks.
type Identity struct {
	ID        string
	Login     string
	Name      string
	CreatedAt time.Time
	Followers int
}

type identityFields struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Followers countField
}

func (f identityFields) identity() *Identity {
	return &Identity{
		ID:        f.ID,
		Login:     f.Login,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		Followers: f.Followers.TotalCount,
	}
}

// Viewer returns the identity behind the configured token.
func (c *Client) Viewer(ctx context.Context) (*Identity, error) {
	var resp struct {
		Viewer identityFields `json:"viewer"`
	}
	if err := c.doGraphQL(ctx, "viewer", viewerQuery, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Viewer.identity(), nil
}

// User returns the identity of login.
func (c *Client) User(ctx context.Context, login string) (*Identity, error) {
	var resp struct {
		User identityFields `json:"user"`
	}
	vars := map[string]interface{}{"login": login}
	if err := c.doGraphQL(ctx, "user", userQuery, vars, &resp); err != nil {
		return nil, err
	}
	return resp.User.identity(), nil
}

const repositoryOverviewQuery = `
query($login: String!, $affiliations: [RepositoryAffiliation], $cursor: String) {
  user(login: $login) {
    repositories(first: 100, after: $cursor, ownerAffiliations: $affiliations) {
      totalCount
      edges {
        node {
          nameWithOwner
          stargazers { totalCount }
        }
      }
      pageInfo {
        endCursor
        hasNextPage
      }
    }
  }
}`

// RepositoryOverview sums repository count and stargazers across every page
// of login's repositories under the given affiliations (e.g. ["OWNER"]).
type RepositoryOverview struct {
	RepoCount  int
	TotalStars int
}

func (c *Client) RepositoryOverview(ctx context.Context, login string, affiliations []string) (*RepositoryOverview, error) {
	overview := &RepositoryOverview{}
	var cursor *string
	for {
		var resp struct {
			User struct {
				Repositories struct {
					TotalCount int `json:"totalCount"`
					Edges      []struct {
						Node struct {
							NameWithOwner string `json:"nameWithOwner"`
							Stargazers    countField
						} `json:"node"`
					} `json:"edges"`
					PageInfo struct {
						EndCursor   string `json:"endCursor"`
						HasNextPage bool   `json:"hasNextPage"`
					} `json:"pageInfo"`
				} `json:"repositories"`
			} `json:"user"`
		}
		vars := map[string]interface{}{
			"login":        login,
			"affiliations": affiliations,
			"cursor":       cursor,
		}
		if err := c.doGraphQL(ctx, "repository_overview", repositoryOverviewQuery, vars, &resp); err != nil {
			return nil, err
		}

		repos := resp.User.Repositories
		overview.RepoCount = repos.TotalCount
		for _, edge := range repos.Edges {
			overview.TotalStars += edge.Node.Stargazers.TotalCount
		}
		if !repos.PageInfo.HasNextPage {
			return overview, nil
		}
		end := repos.PageInfo.EndCursor
		cursor = &end
	}
}
