package pgsql

import (
	"context"
	"fmt"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for the append-only ledger.
func NewTransactionRepository(pool *pgxpool.Pool) repositories.TransactionRepositoryFacade {
	return &transactionRepository{BaseRepository{Pool: pool}}
}

const transactionInsert = `
	INSERT INTO transactions (transaction_id, date, sending_account_id, receiving_account_id, amount, purpose)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// AddTransaction appends one ledger entry. There is no update or delete
// counterpart anywhere in this repository.
func (r *transactionRepository) AddTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.Pool.Exec(ctx, transactionInsert,
		txn.TransactionID,
		txn.Date,
		txn.SendingAccountID,
		txn.ReceivingAccountID,
		txn.Amount,
		txn.Purpose,
	)
	if err != nil {
		return fmt.Errorf("failed to add transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// AddTransactionInTx appends a ledger entry within an existing transaction.
func (r *transactionRepository) AddTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	_, err := tx.Exec(ctx, transactionInsert,
		txn.TransactionID,
		txn.Date,
		txn.SendingAccountID,
		txn.ReceivingAccountID,
		txn.Amount,
		txn.Purpose,
	)
	if err != nil {
		return fmt.Errorf("failed to add transaction %s in tx: %w", txn.TransactionID, err)
	}
	return nil
}

// ListTransactionsByAccountID retrieves the transactions touching an
// account as sender or receiver, newest first.
func (r *transactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, date, sending_account_id, receiving_account_id, amount, purpose
		FROM transactions
		WHERE sending_account_id = $1 OR receiving_account_id = $1
		ORDER BY date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.Date,
			&txn.SendingAccountID,
			&txn.ReceivingAccountID,
			&txn.Amount,
			&txn.Purpose,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, err)
	}
	return transactions, nil
}
