package domain

// ProductOffer lists the product of an active plan for purchase. Inventory
// is decremented on every purchase; the offer deactivates once inventory
// reaches zero or when the planner hides it.
type ProductOffer struct {
	OfferID         string `json:"offerID"`
	PlanID          string `json:"planID"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	AmountAvailable int64  `json:"amountAvailable"`
	Active          bool   `json:"active"`
	AuditFields
}
