package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(ctx context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	calls int
}

func (f *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	f.calls++
	return f.tx, nil
}

func TestWithinTx_CommitRunsHooksInOrder(t *testing.T) {
	tx := &fakeTx{}
	tr := NewTransactor(&fakeBeginner{tx: tx})

	var order []string
	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		tr.AfterCommit(ctx, func(context.Context) { order = append(order, "first") })
		tr.AfterCommit(ctx, func(context.Context) { order = append(order, "second") })
		// hooks must not fire before commit
		assert.Empty(t, order)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestWithinTx_RollbackDropsHooks(t *testing.T) {
	tx := &fakeTx{}
	tr := NewTransactor(&fakeBeginner{tx: tx})

	fired := false
	wantErr := errors.New("write failed")
	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		tr.AfterCommit(ctx, func(context.Context) { fired = true })
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, fired)
}

func TestWithinTx_CommitFailureDropsHooks(t *testing.T) {
	tx := &fakeTx{commitErr: errors.New("serialization failure")}
	tr := NewTransactor(&fakeBeginner{tx: tx})

	fired := false
	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		tr.AfterCommit(ctx, func(context.Context) { fired = true })
		return nil
	})

	assert.Error(t, err)
	assert.False(t, fired)
}

func TestWithinTx_HookPanicIsIsolated(t *testing.T) {
	tr := NewTransactor(&fakeBeginner{tx: &fakeTx{}})

	secondRan := false
	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		tr.AfterCommit(ctx, func(context.Context) { panic("smtp exploded") })
		tr.AfterCommit(ctx, func(context.Context) { secondRan = true })
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, secondRan)
}

func TestWithinTx_HooksSurviveRequestCancellation(t *testing.T) {
	tr := NewTransactor(&fakeBeginner{tx: &fakeTx{}})
	ctx, cancel := context.WithCancel(context.Background())

	var hookErr error
	err := tr.WithinTx(ctx, func(txCtx context.Context) error {
		tr.AfterCommit(txCtx, func(hookCtx context.Context) { hookErr = hookCtx.Err() })
		cancel()
		return nil
	})

	// commit on the fake ignores cancellation
	assert.NoError(t, err)
	assert.NoError(t, hookErr)
}

func TestWithinTx_NestedJoinsOuter(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	tr := NewTransactor(b)

	var order []string
	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		return tr.WithinTx(ctx, func(inner context.Context) error {
			tr.AfterCommit(inner, func(context.Context) { order = append(order, "inner") })
			assert.Empty(t, order)
			return nil
		})
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, []string{"inner"}, order)
}

func TestAfterCommit_OutsideTxRunsImmediately(t *testing.T) {
	tr := NewTransactor(&fakeBeginner{tx: &fakeTx{}})

	fired := false
	tr.AfterCommit(context.Background(), func(context.Context) { fired = true })
	assert.True(t, fired)
}

func TestConn(t *testing.T) {
	tx := &fakeTx{}
	tr := NewTransactor(&fakeBeginner{tx: tx})

	_ = tr.WithinTx(context.Background(), func(ctx context.Context) error {
		assert.Same(t, tx, Conn(ctx, nil))
		return nil
	})
	assert.Nil(t, Conn(context.Background(), nil))
}

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles(testMigrations, "testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_first.sql", "0002_second.sql"}, files)
}
