// Package sqlite implements the record store on a local SQLite file for development.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"sylo/internal/domain"
	"sylo/internal/domain/repositories"
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	*sql.DB
	logger *slog.Logger
	newID  func() string
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string, logger *slog.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY between pool members
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{DB: db, logger: logger, newID: func() string { return uuid.NewString() }}, nil
}

// executor is implemented by both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txContextKey struct{}

// executor returns the transaction stored in ctx, or the database
func (db *DB) executor(ctx context.Context) executor {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// TransactionManager returns a transaction manager bound to this database
func (db *DB) TransactionManager() repositories.TransactionManager {
	return &transactionManager{db: db}
}

type transactionManager struct {
	db *DB
}

// ExecTx executes fn within a transaction. Nested calls reuse the outer transaction.
func (tm *transactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if _, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreError("begin transaction", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			tm.db.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStoreError("commit transaction", err)
	}
	return nil
}

// isUniqueViolation checks for a UNIQUE constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// checkDeleted reports a single-row delete that matched nothing
func checkDeleted(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStoreError("delete "+kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrDeleteInconsistency)
	}
	return nil
}

// inClause returns "?, ?, ?" for n arguments
func inClause(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
