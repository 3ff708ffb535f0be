package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work atomically.
// The in-memory store runs fn directly; PostgreSQL wraps it in BEGIN/COMMIT.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
