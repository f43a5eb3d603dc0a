package dto

import (
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	OwnerID     string             `json:"ownerID"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		OwnerID:     a.OwnerID,
		AccountType: a.AccountType,
		Balance:     a.Balance,
	}
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	Date               time.Time       `json:"date"`
	SendingAccountID   string          `json:"sendingAccountID"`
	ReceivingAccountID string          `json:"receivingAccountID"`
	Amount             decimal.Decimal `json:"amount"`
	Purpose            string          `json:"purpose"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		Date:               t.Date,
		SendingAccountID:   t.SendingAccountID,
		ReceivingAccountID: t.ReceivingAccountID,
		Amount:             t.Amount,
		Purpose:            t.Purpose,
	}
}

// PayoutFactorResponse defines the data returned for a payout-factor snapshot.
type PayoutFactorResponse struct {
	CalculationDate time.Time       `json:"calculationDate"`
	Value           decimal.Decimal `json:"value"`
}
