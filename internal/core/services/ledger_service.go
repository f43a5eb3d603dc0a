package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
)

var (
	// ErrSameAccount rejects transfers between an account and itself.
	ErrSameAccount = errors.New("sending and receiving account must differ")
)

// ledgerService exposes the append-only ledger and balance adjustments.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade
	clock       portssvc.Clock
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	clock portssvc.Clock,
) portssvc.LedgerSvcFacade {
	return &ledgerService{accountRepo: accountRepo, txnRepo: txnRepo, clock: clock}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RegisterTransaction appends an immutable ledger entry. Balance mutation
// is the caller's separate responsibility; use Transfer to get both in one
// atomic operation.
func (s *ledgerService) RegisterTransaction(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, purpose string) (*domain.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccount, fromAccountID)
	}
	if _, err := s.accountRepo.FindAccountsByIDs(ctx, []string{fromAccountID, toAccountID}); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Date:               s.clock.Now(),
		SendingAccountID:   fromAccountID,
		ReceivingAccountID: toAccountID,
		Amount:             amount,
		Purpose:            purpose,
	}
	if err := s.txnRepo.AddTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to append transaction")
		return nil, err
	}
	return &txn, nil
}

// AdjustBalance applies a signed delta to one account. Accounts may go
// negative; a negative balance is a cost liability, not an error.
func (s *ledgerService) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID}); err != nil {
		return err
	}
	changes := map[string]decimal.Decimal{accountID: delta}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, s.clock.Now()); err != nil {
		return err
	}
	return s.accountRepo.Commit(ctx, tx)
}

// Transfer moves amount between two accounts and appends the matching
// ledger entry in one storage transaction.
func (s *ledgerService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, purpose string) (*domain.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccount, fromAccountID)
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Date:               now,
		SendingAccountID:   fromAccountID,
		ReceivingAccountID: toAccountID,
		Amount:             amount,
		Purpose:            purpose,
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{fromAccountID, toAccountID})
	if err != nil {
		return nil, err
	}
	if len(accounts) != 2 {
		return nil, apperrors.ErrNotFound
	}

	changes := map[string]decimal.Decimal{
		fromAccountID: amount.Neg(),
		toAccountID:   amount,
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, now); err != nil {
		return nil, err
	}
	if err := s.txnRepo.AddTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()))
	return &txn, nil
}

// GetAccount retrieves an account with its current balance.
func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccountTransactions retrieves the ledger entries touching an account.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, offset)
}
