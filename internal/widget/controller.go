package widget

import (
	"context"
	"log"
	"sync"

	"github.com/naka-gawa/starz/internal/domain"
)

// Looker resolves a name to a lookup result. usecase.Lookup implements it.
type Looker interface {
	Lookup(ctx context.Context, name string) domain.Result
}

// Controller owns a widget State and drives lookups for it. It is safe for
// concurrent use.
type Controller struct {
	looker Looker
	logger *log.Logger

	mu    sync.Mutex
	state State

	inflight sync.WaitGroup
}

// NewController creates a mounted Controller.
func NewController(looker Looker, logger *log.Logger) *Controller {
	return &Controller{
		looker: looker,
		logger: logger,
		state:  Initial(),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies ev. If ev issues a request the lookup runs in its own
// goroutine and its response is dispatched when it completes; responses
// to superseded requests are discarded by Reduce.
func (c *Controller) Dispatch(ctx context.Context, ev Event) {
	c.mu.Lock()
	next, req := Reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	if req == nil {
		return
	}
	c.logger.Printf("Widget: issuing request %d for %q", req.Generation, req.Name)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		result := c.looker.Lookup(ctx, req.Name)
		if current := c.State().Issued; current != req.Generation {
			c.logger.Printf("Widget: discarding stale response %d (latest %d)", req.Generation, current)
		}
		c.Dispatch(ctx, Responded{Generation: req.Generation, Result: result})
	}()
}

// Submit types value into the field and presses Enter, then waits for the
// resulting lookup to finish.
func (c *Controller) Submit(ctx context.Context, value string) State {
	c.Dispatch(ctx, Typed{Value: value, Enter: true})
	c.Wait()
	return c.State()
}

// Wait blocks until every in-flight lookup has been applied.
func (c *Controller) Wait() {
	c.inflight.Wait()
}
