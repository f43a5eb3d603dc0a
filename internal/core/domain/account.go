package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType identifies which ledger an account belongs to. Companies own
// one account of each of the four company types; members own a single
// member account; social accounting owns the accounting account that all
// credit grants originate from.
type AccountType string

const (
	AccountMeans       AccountType = "p"          // fixed means of production
	AccountRawMaterial AccountType = "r"          // raw materials and consumables
	AccountWork        AccountType = "a"          // labour cost
	AccountProduct     AccountType = "prd"        // finished goods valuation
	AccountMember      AccountType = "member"     // member labour certificates
	AccountAccounting  AccountType = "accounting" // social accounting source
)

// CompanyAccountTypes lists the four account types every company owns.
func CompanyAccountTypes() []AccountType {
	return []AccountType{AccountMeans, AccountRawMaterial, AccountWork, AccountProduct}
}

// Account is a single ledger of labour hours. The balance is persisted on
// the account row and is reconstructible by summing all transactions that
// reference the account. Balances may go negative; a negative product
// account represents an outstanding cost-of-goods liability.
type Account struct {
	AccountID   string          `json:"accountID"`
	OwnerID     string          `json:"ownerID"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
