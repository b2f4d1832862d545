package database

import (
	"context"
	"errors"
)

// ErrNoTransaction is returned when committing or rolling back a context
// that carries no transaction.
var ErrNoTransaction = errors.New("no transaction in context")

type txKey struct{}

// txScope binds a transaction to a context. Only the scope that began the
// transaction ends it.
type txScope struct {
	tx    Transaction
	owner bool
}

func scopeFrom(ctx context.Context) (txScope, bool) {
	scope, ok := ctx.Value(txKey{}).(txScope)
	return scope, ok && scope.tx != nil
}

// TxFromContext returns the transaction bound to ctx, or nil.
func TxFromContext(ctx context.Context) Transaction {
	if scope, ok := scopeFrom(ctx); ok {
		return scope.tx
	}
	return nil
}

// ExecutorFromContext returns the transaction bound to ctx, falling back to
// conn. Repositories call it on every query so they join a surrounding
// unit of work.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return conn
}

// RunInTx runs fn inside the transaction bound to ctx. Without one, fn gets
// a fresh transaction that is committed when fn succeeds.
func RunInTx(ctx context.Context, conn Connection, fn func(exec Executor) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(tx)
	}

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// UnitOfWork implements application.UnitOfWork on a Connection. Nested
// units join the outer transaction.
type UnitOfWork struct {
	conn Connection
}

// NewUnitOfWork creates a unit of work for conn.
func NewUnitOfWork(conn Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// Begin binds a transaction to the returned context.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if scope, ok := scopeFrom(ctx); ok {
		return context.WithValue(ctx, txKey{}, txScope{tx: scope.tx}), nil
	}

	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, txKey{}, txScope{tx: tx, owner: true}), nil
}

// Commit commits the transaction when ctx began it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	return u.end(ctx, Transaction.Commit)
}

// Rollback rolls back the transaction when ctx began it.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	return u.end(ctx, Transaction.Rollback)
}

func (u *UnitOfWork) end(ctx context.Context, finish func(Transaction, context.Context) error) error {
	scope, ok := scopeFrom(ctx)
	if !ok {
		return ErrNoTransaction
	}
	if !scope.owner {
		return nil
	}
	return finish(scope.tx, ctx)
}
