package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/naka-gawa/starz/internal/domain"
	"github.com/naka-gawa/starz/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSource is a mock implementation of the gateway.Source interface.
// It allows us to simulate the behavior of a gateway without making real API calls.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListRepositories(ctx context.Context, name string) ([]domain.Entry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func TestLookup_Lookup(t *testing.T) {
	sourceErr := errors.New("connection refused")

	testCases := []struct {
		name         string
		input        string
		mockEntries  []domain.Entry
		mockErr      error
		expectedName string
		expected     domain.Result
	}{
		{
			name:        "happy path - entries become an OK result",
			input:       "octocat",
			mockEntries: []domain.Entry{{Name: "foo", StargazerCount: 12}},
			expected:    domain.Result{Name: "octocat", Kind: domain.ResultOK, Entries: []domain.Entry{{Name: "foo", StargazerCount: 12}}},
		},
		{
			name:     "nil entries become NotFound",
			input:    "octocat",
			expected: domain.Result{Name: "octocat", Kind: domain.ResultNotFound},
		},
		{
			name:        "empty entries become NotFound",
			input:       "octocat",
			mockEntries: []domain.Entry{},
			expected:    domain.Result{Name: "octocat", Kind: domain.ResultNotFound},
		},
		{
			name:     "ErrNotFound becomes NotFound",
			input:    "octocat",
			mockErr:  fmt.Errorf("wrapped: %w", gateway.ErrNotFound),
			expected: domain.Result{Name: "octocat", Kind: domain.ResultNotFound},
		},
		{
			name:     "other errors become Failure",
			input:    "octocat",
			mockErr:  sourceErr,
			expected: domain.Result{Name: "octocat", Kind: domain.ResultFailure, Err: sourceErr},
		},
		{
			name:     "name is trimmed before the source is called",
			input:    "  octocat \t",
			expected: domain.Result{Name: "octocat", Kind: domain.ResultNotFound},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := new(mockSource)
			var ret interface{}
			if tc.mockEntries != nil {
				ret = tc.mockEntries
			}
			source.On("ListRepositories", mock.Anything, "octocat").Return(ret, tc.mockErr).Once()

			lookup := NewLookup(source, log.New(io.Discard, "", 0))
			result := lookup.Lookup(context.Background(), tc.input)

			assert.Equal(t, tc.expected, result)
			source.AssertExpectations(t)
		})
	}
}

func TestLookup_LookupAllKeepsInputOrder(t *testing.T) {
	source := new(mockSource)
	source.On("ListRepositories", mock.Anything, "alice").Return([]domain.Entry{{Name: "a", StargazerCount: 1}}, nil)
	source.On("ListRepositories", mock.Anything, "bob").Return(nil, gateway.ErrNotFound)
	source.On("ListRepositories", mock.Anything, "carol").Return(nil, errors.New("boom"))

	lookup := NewLookup(source, log.New(io.Discard, "", 0))
	results := lookup.LookupAll(context.Background(), []string{"alice", "bob", "carol"})

	require.Len(t, results, 3)
	assert.Equal(t, "alice", results[0].Name)
	assert.Equal(t, domain.ResultOK, results[0].Kind)
	assert.Equal(t, "bob", results[1].Name)
	assert.Equal(t, domain.ResultNotFound, results[1].Kind)
	assert.Equal(t, "carol", results[2].Name)
	assert.Equal(t, domain.ResultFailure, results[2].Kind)
	source.AssertExpectations(t)
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		entries  []domain.Entry
		expected domain.Summary
	}{
		{
			name:     "empty case - zero summary",
			entries:  nil,
			expected: domain.Summary{},
		},
		{
			name: "odd count",
			entries: []domain.Entry{
				{Name: "a", StargazerCount: 1},
				{Name: "b", StargazerCount: 10},
				{Name: "c", StargazerCount: 4},
			},
			expected: domain.Summary{Repositories: 3, TotalStars: 15, MeanStars: 5, MedianStars: 4},
		},
		{
			name: "even count",
			entries: []domain.Entry{
				{Name: "a", StargazerCount: 2},
				{Name: "b", StargazerCount: 6},
			},
			expected: domain.Summary{Repositories: 2, TotalStars: 8, MeanStars: 4, MedianStars: 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := Summarize(tc.entries)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, summary)
		})
	}
}
