package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/starz/internal/domain"
)

// Summarize computes star statistics over entries. An empty list yields
// the zero Summary.
func Summarize(entries []domain.Entry) (domain.Summary, error) {
	if len(entries) == 0 {
		return domain.Summary{}, nil
	}

	data := make(stats.Float64Data, 0, len(entries))
	total := 0
	for _, e := range entries {
		data = append(data, float64(e.StargazerCount))
		total += e.StargazerCount
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to compute mean stars: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to compute median stars: %w", err)
	}

	return domain.Summary{
		Repositories: len(entries),
		TotalStars:   total,
		MeanStars:    mean,
		MedianStars:  median,
	}, nil
}
