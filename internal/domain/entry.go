// Package domain contains the core data structures and domain logic for the application.
package domain

// Entry is one repository belonging to the queried user.
// It is the core domain entity of this application.
type Entry struct {
	Name           string `json:"name"`
	StargazerCount int    `json:"stargazers_count"`
}

// ResultKind classifies the outcome of a lookup.
type ResultKind int

const (
	// ResultUnknown is the zero value; no lookup produced it.
	ResultUnknown ResultKind = iota
	// ResultOK means the source returned at least one entry.
	ResultOK
	// ResultNotFound means the source returned no data for the user.
	ResultNotFound
	// ResultFailure means the lookup could not be completed.
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultNotFound:
		return "not_found"
	case ResultFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the decoded outcome of a lookup for a single name.
type Result struct {
	Name    string
	Kind    ResultKind
	Entries []Entry
	// Err is set only for ResultFailure.
	Err error
}

// OK builds a successful result. An empty entry list is reported as NotFound.
func OK(name string, entries []Entry) Result {
	if len(entries) == 0 {
		return NotFound(name)
	}
	return Result{Name: name, Kind: ResultOK, Entries: entries}
}

// NotFound builds a result for a user with no data.
func NotFound(name string) Result {
	return Result{Name: name, Kind: ResultNotFound}
}

// Failure builds a result for a lookup that errored.
func Failure(name string, err error) Result {
	return Result{Name: name, Kind: ResultFailure, Err: err}
}

// Summary aggregates the star counts of a successful lookup.
type Summary struct {
	Repositories int     `json:"repositories"`
	TotalStars   int     `json:"total_stars"`
	MeanStars    float64 `json:"mean_stars"`
	MedianStars  float64 `json:"median_stars"`
}
