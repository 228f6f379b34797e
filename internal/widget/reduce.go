package widget

import (
	"strings"

	"github.com/naka-gawa/starz/internal/domain"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Mounted resets the widget to its initial state.
type Mounted struct{}

// Typed is a keystroke in the name field. Value is the field content after
// the key; Enter is set when the key was Enter.
type Typed struct {
	Value string
	Enter bool
}

// Clicked is a press of the send trigger.
type Clicked struct{}

// Responded delivers the result of the request with the given generation.
type Responded struct {
	Generation uint64
	Result     domain.Result
}

func (Mounted) isEvent()   {}
func (Typed) isEvent()     {}
func (Clicked) isEvent()   {}
func (Responded) isEvent() {}

// Reduce computes the next state for ev. When the event triggers a lookup
// the returned Request is non-nil; Reduce itself performs no I/O.
//
// Mounted yields a fresh state with Issued preserved, so responses to
// requests issued before the reset are still recognised as stale.
func Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case Mounted:
		next := Initial()
		next.Issued = s.Issued
		return next, nil
	case Typed:
		s.Value = ev.Value
		if normalizeName(ev.Value) == "" {
			s.Indicator = IndicatorWarning
		} else {
			s.Indicator = IndicatorDefault
		}
		if ev.Enter {
			return submit(s)
		}
		return s, nil
	case Clicked:
		return submit(s)
	case Responded:
		return respond(s, ev), nil
	default:
		return s, nil
	}
}

func submit(s State) (State, *Request) {
	s.Alert = ""
	name := normalizeName(s.Value)
	if name == "" {
		s.Indicator = IndicatorError
		s.Alert = AlertEmptyName
		return s, nil
	}
	s.Issued++
	return s, &Request{Generation: s.Issued, Name: name}
}

func respond(s State, ev Responded) State {
	if ev.Generation == 0 || ev.Generation != s.Issued {
		return s
	}
	if ev.Result.Kind == domain.ResultOK && len(ev.Result.Entries) > 0 {
		s.Value = ""
		s.Entries = append([]domain.Entry(nil), ev.Result.Entries...)
		s.NotFound = false
		return s
	}
	// The server answered without data: the field is cleared as on
	// success. Only a failed request keeps what the user typed.
	if ev.Result.Kind != domain.ResultFailure && ev.Result.Kind != domain.ResultUnknown {
		s.Value = ""
	}
	s.Entries = nil
	s.NotFound = true
	return s
}

// Valid reports whether value passes the submit guard, i.e. whether
// submitting it issues a lookup.
func Valid(value string) bool {
	return normalizeName(value) != ""
}

// normalizeName is the trimming policy applied before validation and lookup.
func normalizeName(v string) string {
	return strings.TrimSpace(v)
}

// Settle returns the state after typing value, pressing Enter and
// receiving result for the issued request. If value fails validation no
// request is issued and result is not applied.
func Settle(value string, result domain.Result) State {
	s, req := Reduce(Initial(), Typed{Value: value, Enter: true})
	if req == nil {
		return s
	}
	s, _ = Reduce(s, Responded{Generation: req.Generation, Result: result})
	return s
}
