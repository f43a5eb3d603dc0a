package services

import (
	"context"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade exposes the append-only transaction ledger and account
// balance adjustments. RegisterTransaction and AdjustBalance are the two
// primitive halves; callers that need both consistent use Transfer, which
// wraps them in one storage transaction.
type LedgerSvcFacade interface {
	// RegisterTransaction appends an immutable ledger entry. It does not
	// touch balances.
	RegisterTransaction(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, purpose string) (*domain.Transaction, error)

	// AdjustBalance applies a signed delta to one account. No floor is
	// enforced; negative balances represent cost liabilities.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) error

	// Transfer moves amount between two accounts and appends the matching
	// ledger entry atomically.
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, purpose string) (*domain.Transaction, error)

	// GetAccount retrieves an account with its current balance.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountTransactions retrieves the ledger entries touching an
	// account, newest first.
	ListAccountTransactions(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error)
}
