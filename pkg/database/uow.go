package database

import (
	"context"
	"fmt"

	"opportunityhub-backend/pkg/safego"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type unitOfWork struct {
	tx    pgx.Tx
	hooks []func(ctx context.Context)
}

type uowKey struct{}

// Transactor runs functions inside a transaction carried by the context and
// runs hooks registered with AfterCommit once that transaction commits.
type Transactor struct {
	db TxBeginner
}

func NewTransactor(db TxBeginner) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in a transaction. A nested call joins the outer one.
// Hooks run only if the outermost transaction commits.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if current(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	uow := &unitOfWork{tx: tx}
	txCtx := context.WithValue(ctx, uowKey{}, uow)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	runHooks(context.WithoutCancel(ctx), uow.hooks)
	return nil
}

// AfterCommit defers hook until the current transaction commits. Outside a
// transaction the hook runs immediately.
func (t *Transactor) AfterCommit(ctx context.Context, hook func(ctx context.Context)) {
	if uow := current(ctx); uow != nil {
		uow.hooks = append(uow.hooks, hook)
		return
	}
	runHooks(context.WithoutCancel(ctx), []func(context.Context){hook})
}

// Conn returns the transaction in ctx, or db when there is none.
func Conn(ctx context.Context, db DBTX) DBTX {
	if uow := current(ctx); uow != nil {
		return uow.tx
	}
	return db
}

func current(ctx context.Context) *unitOfWork {
	uow, _ := ctx.Value(uowKey{}).(*unitOfWork)
	return uow
}

func runHooks(ctx context.Context, hooks []func(context.Context)) {
	for _, hook := range hooks {
		h := hook
		_ = safego.Run("after-commit hook", func() { h(ctx) })
	}
}
