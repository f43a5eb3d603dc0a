package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchasePurpose states what a buyer acquires a product for, and thereby
// which of the buyer's accounts is debited.
type PurchasePurpose string

const (
	PurposeMeansOfProduction PurchasePurpose = "means_of_prod"
	PurposeRawMaterials      PurchasePurpose = "raw_materials"
	PurposeConsumption       PurchasePurpose = "consumption"
)

// BuyerKind tags the variant of a Buyer.
type BuyerKind string

const (
	BuyerMember  BuyerKind = "MEMBER"
	BuyerCompany BuyerKind = "COMPANY"
)

// Buyer is the tagged union of the two actor kinds that may purchase a
// product. Exactly one of MemberID/CompanyID is set, according to Kind.
type Buyer struct {
	Kind      BuyerKind `json:"kind"`
	MemberID  string    `json:"memberID,omitempty"`
	CompanyID string    `json:"companyID,omitempty"`
}

// MemberBuyer builds the member variant of a Buyer.
func MemberBuyer(memberID string) Buyer {
	return Buyer{Kind: BuyerMember, MemberID: memberID}
}

// CompanyBuyer builds the company variant of a Buyer.
func CompanyBuyer(companyID string) Buyer {
	return Buyer{Kind: BuyerCompany, CompanyID: companyID}
}

// ActorID returns the id of whichever actor the buyer wraps.
func (b Buyer) ActorID() (string, error) {
	switch b.Kind {
	case BuyerMember:
		return b.MemberID, nil
	case BuyerCompany:
		return b.CompanyID, nil
	default:
		return "", fmt.Errorf("unknown buyer kind %q", b.Kind)
	}
}

// Purchase is the immutable record of one product acquisition.
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	Date         time.Time       `json:"date"`
	PlanID       string          `json:"planID"`
	Buyer        Buyer           `json:"buyer"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Amount       int64           `json:"amount"`
	Purpose      PurchasePurpose `json:"purpose"`
}
