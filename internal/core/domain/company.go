package domain

import "fmt"

// Company is a producing collective. Every company owns exactly four
// accounts, one per company account type, created at registration and never
// deleted.
type Company struct {
	CompanyID            string `json:"companyID"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PasswordHash         string `json:"-"`
	MeansAccountID       string `json:"meansAccountID"`
	RawMaterialAccountID string `json:"rawMaterialAccountID"`
	WorkAccountID        string `json:"workAccountID"`
	ProductAccountID     string `json:"productAccountID"`
	AuditFields
}

// AccountIDs returns the company's four account ids in the fixed order
// means, raw material, work, product.
func (c Company) AccountIDs() []string {
	return []string{
		c.MeansAccountID,
		c.RawMaterialAccountID,
		c.WorkAccountID,
		c.ProductAccountID,
	}
}

// DebitAccountFor resolves which of the company's accounts pays for a
// purchase with the given purpose. Companies buy means of production and
// raw materials; consumption is a member purpose.
func (c Company) DebitAccountFor(purpose PurchasePurpose) (string, error) {
	switch purpose {
	case PurposeMeansOfProduction:
		return c.MeansAccountID, nil
	case PurposeRawMaterials:
		return c.RawMaterialAccountID, nil
	case PurposeConsumption:
		return "", fmt.Errorf("companies cannot purchase for consumption")
	default:
		return "", fmt.Errorf("unknown purchase purpose %q", purpose)
	}
}
