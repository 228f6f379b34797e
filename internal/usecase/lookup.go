// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/naka-gawa/starz/internal/domain"
	"github.com/naka-gawa/starz/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds LookupAll fan-out.
const maxConcurrentLookups = 4

// Lookup is the use case for looking up a user's repositories.
// It turns source errors into an explicit domain.Result.
type Lookup struct {
	source gateway.Source
	logger *log.Logger
}

// NewLookup creates a new Lookup instance.
func NewLookup(source gateway.Source, logger *log.Logger) *Lookup {
	return &Lookup{
		source: source,
		logger: logger,
	}
}

// Lookup queries the source for name. It never returns an error: failures
// are reported as domain.ResultFailure and logged.
func (l *Lookup) Lookup(ctx context.Context, name string) domain.Result {
	name = strings.TrimSpace(name)
	l.logger.Printf("Usecase: Looking up %q...", name)

	entries, err := l.source.ListRepositories(ctx, name)
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		l.logger.Printf("Usecase: %q not found.", name)
		return domain.NotFound(name)
	case err != nil:
		l.logger.Printf("Usecase: lookup of %q failed: %v", name, err)
		return domain.Failure(name, err)
	}

	result := domain.OK(name, entries)
	l.logger.Printf("Usecase: lookup of %q complete (%s, %d entries).", name, result.Kind, len(result.Entries))
	return result
}

// LookupAll looks up every name concurrently and returns the results in
// the order of names.
func (l *Lookup) LookupAll(ctx context.Context, names []string) []domain.Result {
	results := make([]domain.Result, len(names))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		eg.Go(func() error {
			results[i] = l.Lookup(egCtx, name)
			return nil
		})
	}
	// Lookup reports failures through the result, so Wait has nothing to return.
	_ = eg.Wait()

	return results
}
