// Package widget implements the repository lookup widget: a name field
// with a validation indicator, an inline alert, a send trigger and a
// results table.
//
// The widget is modelled as explicit State plus a pure Reduce function.
// Renderers (HTML, terminal) and drivers (Controller, the interactive
// Model) are layered on top and never mutate State directly.
package widget

import (
	"strconv"
	"strings"

	"github.com/naka-gawa/starz/internal/domain"
)

// Indicator is the validation feedback state of the name field.
type Indicator int

const (
	// IndicatorWarning means the field is empty or untouched.
	IndicatorWarning Indicator = iota
	// IndicatorDefault means the field holds a valid-looking value.
	IndicatorDefault
	// IndicatorError means submit was attempted with an empty field.
	IndicatorError
)

// Class returns the CSS class the name-holder element carries for i.
func (i Indicator) Class() string {
	switch i {
	case IndicatorDefault:
		return "has-default"
	case IndicatorError:
		return "has-error"
	default:
		return "has-warning"
	}
}

func (i Indicator) String() string {
	return strings.TrimPrefix(i.Class(), "has-")
}

const (
	// AlertEmptyName is shown when submit is attempted without a name.
	AlertEmptyName = "Please provide a name."
	// NotFoundText is the single table row shown for empty or failed lookups.
	NotFoundText = "user not found"
)

// State is everything the widget displays.
type State struct {
	// Value is the current content of the name field.
	Value     string
	Indicator Indicator
	// Alert is the inline alert text; empty means hidden.
	Alert string
	// Entries are the rows of the last applied successful lookup.
	Entries []domain.Entry
	// NotFound is set when the last applied lookup was empty or failed.
	NotFound bool
	// Issued is the generation of the most recently issued request.
	// Zero means nothing has been requested yet.
	Issued uint64
}

// Initial returns the state of a freshly mounted widget.
func Initial() State {
	return State{Indicator: IndicatorWarning}
}

// AlertVisible reports whether the alert element is shown.
func (s State) AlertVisible() bool {
	return s.Alert != ""
}

// Rows returns the table body as cell text, in display order.
func (s State) Rows() [][]string {
	if s.NotFound {
		return [][]string{{NotFoundText}}
	}
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, []string{e.Name, strconv.Itoa(e.StargazerCount)})
	}
	return rows
}

// Request asks the driver to look up Name. The response must be fed back
// as a Responded event carrying the same Generation.
type Request struct {
	Generation uint64
	Name       string
}
