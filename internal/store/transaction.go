package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/platform/logger"
)

// TxFn is the unit of work run by a Transactor. Returning an error rolls
// the transaction back; returning nil commits it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// Transactor runs a TxFn inside a transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}

// DBTransactor is the *sql.DB backed Transactor.
type DBTransactor struct {
	db *sql.DB
}

// NewDBTransactor returns a Transactor that opens transactions on db.
func NewDBTransactor(db *sql.DB) *DBTransactor {
	return &DBTransactor{db: db}
}

// RunInTransaction implements Transactor.
func (t *DBTransactor) RunInTransaction(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, t.db, fn)
}

// RunInTransaction runs fn in a new transaction on db. Begin and commit
// failures wrap ErrTransactionFailed. An error from fn is returned as is
// after rollback. A panic in fn rolls back and is re-raised.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrTransactionFailed, err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic failed", slog.String("error", rbErr.Error()), slog.Any("panic", p))
		} else {
			log.Error("transaction rolled back after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: re-raise after rollback
		panic(p)
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		return rollback(log, tx, fnErr)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrTransactionFailed, err)
	}
	return nil
}

func rollback(log *slog.Logger, tx *sql.Tx, cause error) error {
	rbErr := tx.Rollback()
	if rbErr == nil || errors.Is(rbErr, sql.ErrTxDone) {
		log.Debug("transaction rolled back", slog.String("error", cause.Error()))
		return cause
	}
	log.Error("failed to roll back transaction",
		slog.String("rollback_error", rbErr.Error()),
		slog.String("original_error", cause.Error()))
	return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, cause)
}
