package gantt

import (
	"context"
	"sync"
)

// Gate is a one-shot initialization barrier for an external renderer
// backend. The init func runs once, in the background, on the first Start
// or Wait; its error is reported to every waiter and never retried.
type Gate struct {
	once sync.Once
	init func(context.Context) error
	done chan struct{}
	err  error
}

// NewGate returns a gate that runs init once.
func NewGate(init func(context.Context) error) *Gate {
	return &Gate{init: init, done: make(chan struct{})}
}

// Start kicks off initialization without waiting for it.
func (g *Gate) Start(ctx context.Context) {
	g.once.Do(func() {
		ctx := context.WithoutCancel(ctx)
		go func() {
			defer close(g.done)
			if g.init != nil {
				g.err = g.init(ctx)
			}
		}()
	})
}

// Ready reports whether initialization has finished, successfully or not.
func (g *Gate) Ready() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Wait starts initialization if needed and blocks until it finishes or ctx
// is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.Start(ctx)
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
