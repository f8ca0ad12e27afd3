package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrans2005/cycling-booking/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	begins   int
	beginErr error
	// commitErrs[i] is returned by the i-th transaction's Commit; missing
	// entries commit cleanly.
	commitErrs []error
	txs        []*fakeTx
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	if b.begins < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[b.begins]
	}
	b.begins++
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoCommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	var sawTx bool
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx, "fn must run with the transaction in context")
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
}

func TestDoRollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	boom := errors.New("boom")
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDoWrapsBeginError(t *testing.T) {
	beginner := &fakeBeginner{beginErr: errors.New("no connection")}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializableRetriesOnSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{
		commitErrs: []error{serializationFailure(), serializationFailure()},
	}
	mgr := NewTransactionManager(beginner)

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err, "third attempt commits cleanly")
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begins)
}

func TestDoSerializableRetriesOnDeadlock(t *testing.T) {
	beginner := &fakeBeginner{
		commitErrs: []error{&pq.Error{Code: "40P01"}},
	}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, beginner.begins)
}

func TestDoSerializableGivesUpAfterRetries(t *testing.T) {
	beginner := &fakeBeginner{
		commitErrs: []error{
			serializationFailure(),
			serializationFailure(),
			serializationFailure(),
			serializationFailure(),
		},
	}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr, "cause must stay in the chain")
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.Equal(t, 4, beginner.begins, "initial attempt plus three retries")
}

func TestDoSerializableDoesNotRetryBusinessErrors(t *testing.T) {
	beginner := &fakeBeginner{}
	mgr := NewTransactionManager(beginner)

	boom := errors.New("conflict")
	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
