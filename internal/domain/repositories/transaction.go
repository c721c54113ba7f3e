package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work atomically when the store supports it.
// Stores without multi-table transactions run fn directly; callers must
// still order their writes so a failure part-way leaves no dangling edges.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
