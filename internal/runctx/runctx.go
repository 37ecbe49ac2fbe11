// Package runctx scopes one CLI invocation: a run id carried through the
// context into every log line, plus the library lock that keeps concurrent
// runs from interleaving writes.
package runctx

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"facereel/internal/services"
)

// Run identifies a single invocation.
type Run struct {
	ID        string
	StartedAt time.Time

	lock *flock.Flock
}

// New creates a run with a fresh id.
func New() *Run {
	return &Run{ID: uuid.NewString(), StartedAt: time.Now()}
}

// Bind attaches the run id to ctx for log correlation.
func (r *Run) Bind(ctx context.Context) context.Context {
	return services.WithRunID(ctx, r.ID)
}

// AcquireLock takes the library lock without blocking. A held lock means
// another run is active, which is a user-facing condition, not a bug.
func (r *Run) AcquireLock(path string) error {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %q: %w", path, err)
	}
	if !locked {
		return services.Wrap(services.ErrConfiguration, "run", "lock",
			fmt.Sprintf("another facereel run holds %q", path), nil)
	}
	r.lock = lock
	return nil
}

// ReleaseLock releases the library lock if held.
func (r *Run) ReleaseLock() {
	if r.lock != nil {
		_ = r.lock.Unlock()
		r.lock = nil
	}
}

// Elapsed returns the wall time since the run started.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartedAt).Round(time.Millisecond)
}
