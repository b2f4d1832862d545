package application

import (
	"context"
	"fmt"
)

// UnitOfWork scopes repository calls to one transaction carried on the
// context returned by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WithUnitOfWork runs fn inside uow and commits when fn succeeds. An error or
// panic from fn rolls the work back; fn's error is returned unwrapped and a
// failed rollback is not reported. A nil uow runs fn directly.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	if uow == nil {
		return fn(ctx)
	}

	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = uow.Rollback(txCtx)
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}
	done = true
	return uow.Commit(txCtx)
}

// NoopUnitOfWork runs work without a transaction.
type NoopUnitOfWork struct{}

func (NoopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }

func (NoopUnitOfWork) Commit(context.Context) error { return nil }

func (NoopUnitOfWork) Rollback(context.Context) error { return nil }
