// Package lock serialises schedule mutations within one workspace.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotAcquired is returned when the lock is held elsewhere and could not be
// obtained before the context ended.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker grants exclusive access to a named resource.
type Locker interface {
	// Acquire blocks until the lock is held or ctx ends. The returned
	// release func must be called exactly once.
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}

// LocalLocker serialises callers inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(name string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[name]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[name] = ch
	}
	return ch
}

// Acquire implements Locker.
func (l *LocalLocker) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	ch := l.slot(name)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}, nil
}

// With runs fn while holding name. The lock is released even if fn panics.
func With(ctx context.Context, locker Locker, name string, fn func(ctx context.Context) error) (err error) {
	if locker == nil {
		return fn(ctx)
	}
	release, err := locker.Acquire(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if relErr := release(releaseCtx); relErr != nil && err == nil {
			err = relErr
		}
	}()
	return fn(ctx)
}
