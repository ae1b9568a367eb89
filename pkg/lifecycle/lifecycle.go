// Package lifecycle coordinates subsystem startup and shutdown. Startup
// hooks are named and report failure, so readiness reflects which
// subsystems actually came up.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"
)

// ErrStarting is the status of a subsystem whose startup hook has not returned.
var ErrStarting = errors.New("starting")

// ReadinessChecker reports whether the service is ready to serve traffic
// and the startup status of each subsystem.
type ReadinessChecker interface {
	Ready() bool
	Status() map[string]string
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup

	mu      sync.RWMutex
	started bool
	status  map[string]error
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		status: make(map[string]error),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently and records its result under name.
func (c *Coordinator) OnStartup(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	c.status[name] = ErrStarting
	c.mu.Unlock()

	c.startupWg.Go(func() {
		err := fn(c.ctx)
		c.mu.Lock()
		c.status[name] = err
		c.mu.Unlock()
	})
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Ready reports whether startup has finished with every hook succeeding.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return false
	}
	for _, err := range c.status {
		if err != nil {
			return false
		}
	}
	return true
}

// Status returns "ok" or the failure message for each startup hook.
func (c *Coordinator) Status() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.status))
	for name, err := range c.status {
		if err == nil {
			out[name] = "ok"
		} else {
			out[name] = err.Error()
		}
	}
	return out
}

// WaitForStartup blocks until every startup hook has returned and reports
// the failures, each prefixed with its hook name.
func (c *Coordinator) WaitForStartup() error {
	c.startupWg.Wait()

	c.mu.Lock()
	c.started = true
	status := maps.Clone(c.status)
	c.mu.Unlock()

	var errs []error
	for name, err := range status {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
