package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/starz/internal/domain"
)

// API selects which GitHub API a GitHubGateway queries.
type API int

const (
	// APIREST lists repositories with the REST API.
	APIREST API = iota
	// APIGraphQL lists repositories with the GraphQL API.
	APIGraphQL
)

// GitHubGateway lists repositories straight from GitHub, bypassing the
// listing endpoint.
type GitHubGateway struct {
	api           API
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// userRepositoriesQuery pages through the repositories owned by a user.
type userRepositoriesQuery struct {
	User *struct {
		Repositories struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Nodes []struct {
				Name           string
				StargazerCount int
			}
		} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: OWNER)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway creates a GitHubGateway. The token is optional; without
// it requests are unauthenticated and subject to the lower rate limit.
func NewGitHubGateway(api API, token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
	}
	httpClient := &http.Client{Transport: transport}
	return &GitHubGateway{
		api:           api,
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// ListRepositories lists the repositories owned by name, in API order.
func (g *GitHubGateway) ListRepositories(ctx context.Context, name string) ([]domain.Entry, error) {
	if g.api == APIGraphQL {
		return g.listWithGraphQL(ctx, name)
	}
	return g.listWithREST(ctx, name)
}

func (g *GitHubGateway) listWithREST(ctx context.Context, name string) ([]domain.Entry, error) {
	g.logger.Printf("Fetching repositories of %q using REST API...", name)
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var entries []domain.Entry
	for {
		repos, resp, err := g.restClient.Repositories.ListByUser(ctx, name, opts)
		if err != nil {
			var errResp *github.ErrorResponse
			if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		for _, repo := range repos {
			entries = append(entries, domain.Entry{
				Name:           repo.GetName(),
				StargazerCount: repo.GetStargazersCount(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Println("Completed fetching repository data.")
	return entries, nil
}

func (g *GitHubGateway) listWithGraphQL(ctx context.Context, name string) ([]domain.Entry, error) {
	g.logger.Printf("Fetching repositories of %q using GraphQL API...", name)
	variables := map[string]interface{}{
		"login":  githubv4.String(name),
		"cursor": (*githubv4.String)(nil),
	}
	var entries []domain.Entry
	for {
		var q userRepositoriesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			if strings.Contains(err.Error(), "Could not resolve to a User") {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to execute GraphQL query for repositories: %w", err)
		}
		if q.User == nil {
			return nil, ErrNotFound
		}
		for _, node := range q.User.Repositories.Nodes {
			entries = append(entries, domain.Entry{Name: node.Name, StargazerCount: node.StargazerCount})
		}
		if !q.User.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.User.Repositories.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Println("Completed fetching repository data.")
	return entries, nil
}
