package repositories

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for the append-only ledger.
type TransactionReader interface {
	// ListTransactionsByAccountID retrieves all transactions where the
	// account appears as sender or receiver, newest first.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines the single append operation of the ledger.
// Entries are never updated or deleted.
type TransactionWriter interface {
	// AddTransaction appends one immutable ledger entry.
	AddTransaction(ctx context.Context, txn domain.Transaction) error

	// AddTransactionInTx appends a ledger entry within an existing storage
	// transaction, so callers can keep balances and the ledger consistent.
	AddTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines ledger read and append interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
