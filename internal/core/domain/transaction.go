package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable entry of the append-only ledger: a signed
// amount of labour hours moving between two accounts for a stated purpose.
// Transactions are never updated or deleted; an account's balance is the
// sum of all transactions touching it, from the social accounting genesis
// account onward.
type Transaction struct {
	TransactionID      string          `json:"transactionID"`
	Date               time.Time       `json:"date"`
	SendingAccountID   string          `json:"sendingAccountID"`
	ReceivingAccountID string          `json:"receivingAccountID"`
	Amount             decimal.Decimal `json:"amount"`
	Purpose            string          `json:"purpose"`
}
