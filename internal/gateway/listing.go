// Package gateway provides the data sources a lookup can be served from:
// the listing endpoint and the GitHub REST and GraphQL APIs.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"resty.dev/v3"

	"github.com/naka-gawa/starz/internal/domain"
)

// ListPath is the path of the listing resource, keyed by the user name.
const ListPath = "/api/v0/list/{name}/"

// ErrNotFound reports that the source knows nothing about the requested user.
var ErrNotFound = errors.New("user not found")

// Source defines the behavior of a gateway that lists a user's repositories.
type Source interface {
	ListRepositories(ctx context.Context, name string) ([]domain.Entry, error)
}

// ListingGateway queries the listing endpoint of a starz server.
type ListingGateway struct {
	client *resty.Client
	logger *log.Logger
}

// NewListingGateway creates a gateway that talks to the server at endpoint.
func NewListingGateway(endpoint string, logger *log.Logger) *ListingGateway {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(endpoint, "/"))
	client.SetHeader("Accept", "application/json")
	return &ListingGateway{
		client: client,
		logger: logger,
	}
}

// Close releases the idle connections held by the underlying client.
func (g *ListingGateway) Close() error {
	return g.client.Close()
}

// ListRepositories issues a single GET for name. The name is sent as an
// escaped path segment. Any non-2xx status is an error.
func (g *ListingGateway) ListRepositories(ctx context.Context, name string) ([]domain.Entry, error) {
	g.logger.Printf("Fetching repositories of %q from listing endpoint...", name)
	response, err := g.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Get(ListPath)
	if err != nil {
		return nil, fmt.Errorf("failed to request listing endpoint: %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("listing endpoint returned status %d: %s", response.StatusCode(), strings.TrimSpace(response.String()))
	}
	entries, err := decodeEntries([]byte(response.String()))
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Completed fetching %d repositories of %q.", len(entries), name)
	return entries, nil
}

// decodeEntries validates a listing payload. null, an empty body and an
// empty list all decode to no entries.
func decodeEntries(body []byte) ([]domain.Entry, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var raw []struct {
		Name           *string `json:"name"`
		StargazerCount *int    `json:"stargazers_count"`
	}
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode listing payload: %w", err)
	}
	entries := make([]domain.Entry, 0, len(raw))
	for i, item := range raw {
		if item.Name == nil || item.StargazerCount == nil {
			return nil, fmt.Errorf("listing payload entry %d is missing name or stargazers_count", i)
		}
		if *item.StargazerCount < 0 {
			return nil, fmt.Errorf("listing payload entry %d has negative stargazers_count %d", i, *item.StargazerCount)
		}
		entries = append(entries, domain.Entry{Name: *item.Name, StargazerCount: *item.StargazerCount})
	}
	return entries, nil
}
