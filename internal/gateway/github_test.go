package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/starz/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, api API, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		api:           api,
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func TestGitHubGateway_ListWithREST(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Entry
		expectNotFound bool
		expectedErrMsg string
	}{
		{
			name: "happy path - lists repositories in API order",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat/repos", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"name": "zeta", "stargazers_count": 3}, {"name": "alpha", "stargazers_count": 12}]`)
			},
			expected: []domain.Entry{
				{Name: "zeta", StargazerCount: 3},
				{Name: "alpha", StargazerCount: 12},
			},
		},
		{
			name: "unknown user maps to ErrNotFound",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectNotFound: true,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedErrMsg: "failed to list repositories with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, APIREST, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			entries, err := gateway.ListRepositories(context.Background(), "octocat")
			switch {
			case tc.expectNotFound:
				assert.ErrorIs(t, err, ErrNotFound)
			case tc.expectedErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, entries)
			}
		})
	}
}

func TestGitHubGateway_ListWithRESTFollowsPages(t *testing.T) {
	var serverURL string
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name": "second", "stargazers_count": 1}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/octocat/repos?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"name": "first", "stargazers_count": 2}]`)
	}
	gateway, server := setupTestGateway(t, APIREST, http.HandlerFunc(handler))
	defer server.Close()
	serverURL = server.URL

	entries, err := gateway.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Name: "first", StargazerCount: 2},
		{Name: "second", StargazerCount: 1},
	}, entries)
}

func TestGitHubGateway_ListWithGraphQL(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       []domain.Entry
		expectNotFound bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"user":{"repositories":{"pageInfo":{"hasNextPage":false,"endCursor":"abc"},"nodes":[{"name":"foo","stargazerCount":12}]}}}}`,
			expected:     []domain.Entry{{Name: "foo", StargazerCount: 12}},
		},
		{
			name:           "null user maps to ErrNotFound",
			responseBody:   `{"data":{"user":null}}`,
			expectNotFound: true,
		},
		{
			name:           "unresolvable user maps to ErrNotFound",
			responseBody:   `{"data":{"user":null},"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a User with the login of 'ghost'."}]}`,
			expectNotFound: true,
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "octocat")

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, APIGraphQL, http.HandlerFunc(handler))
			defer server.Close()

			entries, err := gateway.ListRepositories(context.Background(), "octocat")

			switch {
			case tc.expectNotFound:
				assert.ErrorIs(t, err, ErrNotFound)
			case tc.expectedErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, entries)
			}
		})
	}
}
