package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable reports an infrastructure failure: the transaction could
// not begin, commit, or finished past its deadline. Callers may retry.
var ErrUnavailable = errors.New("storage unavailable")

// DefaultTxTimeout is used when WithinTx receives a zero timeout.
const DefaultTxTimeout = 5 * time.Second

// WithinTx runs fn inside a single transaction with a bounded deadline.
// Rollback is guaranteed on every non-commit path. Domain errors returned
// by fn pass through untouched; infrastructure errors are wrapped in
// ErrUnavailable so handlers can map them uniformly.
func WithinTx(ctx context.Context, db *sql.DB, timeout time.Duration, fn func(tx *sql.Tx) error) error {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrUnavailable, err)
	}
	return nil
}
