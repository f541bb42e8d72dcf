package domain

import "context"

// Transactor runs work in one database transaction and defers side effects
// until that transaction commits.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	AfterCommit(ctx context.Context, hook func(ctx context.Context))
}
