package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors for plan state transitions. Precondition violations
// (caller bugs) and business rejections (expected outcomes the caller turns
// into a failure response) are distinct values so services can tell them
// apart.
var (
	ErrPlanAlreadyDecided     = errors.New("plan approval has already been decided")
	ErrPlanNotApproved        = errors.New("plan is not approved")
	ErrCreditAlreadyGranted   = errors.New("credit has already been granted for this plan")
	ErrPlanNotExpired         = errors.New("plan is not expired")
	ErrPlanAlreadyRenewed     = errors.New("plan has already been renewed")
	ErrPlanNotActive          = errors.New("plan is not active")
	ErrInvalidProductAmount   = errors.New("product amount must be positive")
	ErrInvalidTimeframe       = errors.New("timeframe must be a positive number of days")
	ErrCreditGrantPurposeSelf = errors.New("credit grant requires the planner owning the plan")
)

// PlanStatus is the derived lifecycle state of a plan. A plan is in exactly
// one status at any time.
type PlanStatus string

const (
	StatusPending          PlanStatus = "PENDING"
	StatusDenied           PlanStatus = "DENIED"
	StatusApprovedInactive PlanStatus = "APPROVED"
	StatusActive           PlanStatus = "ACTIVE"
	StatusExpired          PlanStatus = "EXPIRED"
)

// PlanDraft is the mutable scratch form of a plan before submission. A
// cancelled draft is deleted, never migrated.
type PlanDraft struct {
	DraftID         string          `json:"draftID"`
	PlannerID       string          `json:"plannerID"`
	CreationDate    time.Time       `json:"creationDate"`
	Costs           ProductionCosts `json:"costs"`
	ProductName     string          `json:"productName"`
	ProductUnit     string          `json:"productUnit"`
	ProductAmount   int64           `json:"productAmount"`
	Description     string          `json:"description"`
	Timeframe       int             `json:"timeframe"`
	IsPublicService bool            `json:"isPublicService"`
	AuditFields
}

// Plan is a production plan filed by a company. Lifecycle:
// pending -> approved/denied -> active (credit granted) -> expired, with
// expired plans optionally renewed (spawning a successor) or hidden.
type Plan struct {
	PlanID          string          `json:"planID"`
	PlannerID       string          `json:"plannerID"`
	CreationDate    time.Time       `json:"creationDate"`
	Costs           ProductionCosts `json:"costs"`
	ProductName     string          `json:"productName"`
	ProductUnit     string          `json:"productUnit"`
	ProductAmount   int64           `json:"productAmount"`
	Description     string          `json:"description"`
	Timeframe       int             `json:"timeframe"` // days
	IsPublicService bool            `json:"isPublicService"`

	Approved       bool       `json:"approved"`
	ApprovalDate   *time.Time `json:"approvalDate,omitempty"`
	ApprovalReason string     `json:"approvalReason,omitempty"`

	IsActive       bool       `json:"isActive"`
	Expired        bool       `json:"expired"`
	Renewed        bool       `json:"renewed"`
	HiddenByUser   bool       `json:"hiddenByUser"`
	CooperationID  *string    `json:"cooperationID,omitempty"`
	ActivationDate *time.Time `json:"activationDate,omitempty"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`

	LastCertificatePayout *time.Time `json:"lastCertificatePayout,omitempty"`
	AuditFields
}

// ApprovalDecision is the outcome of an approval policy.
type ApprovalDecision struct {
	Approved bool
	Reason   string
}

// CreditGrant bundles everything the activation of an approved plan emits:
// the activated plan value, the four ledger transactions and the signed
// balance deltas keyed by account id. All of it must be persisted in one
// atomic storage transaction or not at all.
type CreditGrant struct {
	Plan           Plan
	Transactions   []Transaction
	BalanceChanges map[string]decimal.Decimal
}

// SubmitDraft turns a draft into a pending plan carrying the given id.
func SubmitDraft(draft PlanDraft, planID string, now time.Time) (Plan, error) {
	if draft.ProductAmount <= 0 {
		return Plan{}, ErrInvalidProductAmount
	}
	if draft.Timeframe <= 0 {
		return Plan{}, ErrInvalidTimeframe
	}
	return Plan{
		PlanID:          planID,
		PlannerID:       draft.PlannerID,
		CreationDate:    now,
		Costs:           draft.Costs,
		ProductName:     draft.ProductName,
		ProductUnit:     draft.ProductUnit,
		ProductAmount:   draft.ProductAmount,
		Description:     draft.Description,
		Timeframe:       draft.Timeframe,
		IsPublicService: draft.IsPublicService,
		AuditFields:     AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}, nil
}

// Status derives the lifecycle state from the plan's flags.
func (p Plan) Status() PlanStatus {
	switch {
	case p.Expired:
		return StatusExpired
	case p.IsActive:
		return StatusActive
	case p.ApprovalDate != nil && !p.Approved:
		return StatusDenied
	case p.Approved:
		return StatusApprovedInactive
	default:
		return StatusPending
	}
}

// Decide applies an approval decision exactly once. Deciding an already
// decided plan is a precondition violation.
func (p Plan) Decide(decision ApprovalDecision, now time.Time) (Plan, error) {
	if p.ApprovalDate != nil {
		return Plan{}, ErrPlanAlreadyDecided
	}
	p.Approved = decision.Approved
	p.ApprovalReason = decision.Reason
	p.ApprovalDate = &now
	p.LastUpdatedAt = now
	return p, nil
}

// GrantCredit activates an approved plan and emits the four account
// adjustments of the credit grant: the means, raw material and work
// accounts are credited with their respective cost shares and the product
// account is debited by the total production cost as a cost-of-goods
// liability. The transactions all originate from the social accounting
// account and reference the plan id in their purpose. Granting twice is
// rejected, which makes the operation idempotent at the caller's level.
func (p Plan) GrantCredit(planner Company, social SocialAccounting, newID func() string, now time.Time) (CreditGrant, error) {
	if !p.Approved {
		return CreditGrant{}, ErrPlanNotApproved
	}
	if p.IsActive || p.ActivationDate != nil {
		return CreditGrant{}, ErrCreditAlreadyGranted
	}
	if planner.CompanyID != p.PlannerID {
		return CreditGrant{}, fmt.Errorf("%w: plan %s is planned by %s, not %s",
			ErrCreditGrantPurposeSelf, p.PlanID, p.PlannerID, planner.CompanyID)
	}

	total := p.Costs.Total()
	purpose := fmt.Sprintf("Plan-Id: %s", p.PlanID)

	changes := map[string]decimal.Decimal{
		planner.MeansAccountID:       p.Costs.MeansCost,
		planner.RawMaterialAccountID: p.Costs.ResourceCost,
		planner.WorkAccountID:        p.Costs.LabourCost,
		planner.ProductAccountID:     total.Neg(),
	}

	transactions := make([]Transaction, 0, 4)
	for _, receiving := range []struct {
		accountID string
		amount    decimal.Decimal
	}{
		{planner.MeansAccountID, p.Costs.MeansCost},
		{planner.RawMaterialAccountID, p.Costs.ResourceCost},
		{planner.WorkAccountID, p.Costs.LabourCost},
		{planner.ProductAccountID, total.Neg()},
	} {
		transactions = append(transactions, Transaction{
			TransactionID:      newID(),
			Date:               now,
			SendingAccountID:   social.AccountID,
			ReceivingAccountID: receiving.accountID,
			Amount:             receiving.amount,
			Purpose:            purpose,
		})
	}

	expiration := now.AddDate(0, 0, p.Timeframe)
	p.IsActive = true
	p.ActivationDate = &now
	p.ExpirationDate = &expiration
	p.LastUpdatedAt = now

	return CreditGrant{Plan: p, Transactions: transactions, BalanceChanges: changes}, nil
}

// ActiveDays reports how many whole days the plan has been active, clamped
// to its timeframe.
func (p Plan) ActiveDays(now time.Time) int {
	if p.ActivationDate == nil {
		return 0
	}
	days := int(now.Sub(*p.ActivationDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days > p.Timeframe {
		return p.Timeframe
	}
	return days
}

// IsDueForExpiry reports whether an active plan's timeframe has elapsed.
func (p Plan) IsDueForExpiry(now time.Time) bool {
	return p.IsActive && !p.Expired && p.ActiveDays(now) >= p.Timeframe
}

// Expire marks an active plan expired. IsActive and Expired are mutually
// exclusive.
func (p Plan) Expire(now time.Time) (Plan, error) {
	if !p.IsActive || p.Expired {
		return Plan{}, ErrPlanNotActive
	}
	p.IsActive = false
	p.Expired = true
	if p.ExpirationDate == nil {
		p.ExpirationDate = &now
	}
	p.LastUpdatedAt = now
	return p, nil
}

// Renew spawns a pending successor plan copying the production parameters
// of an expired plan, and marks the old plan renewed. Temporal and approval
// fields of the successor start fresh.
func (p Plan) Renew(successorID string, now time.Time) (successor Plan, renewed Plan, err error) {
	if !p.Expired {
		return Plan{}, Plan{}, ErrPlanNotExpired
	}
	if p.Renewed {
		return Plan{}, Plan{}, ErrPlanAlreadyRenewed
	}
	successor = Plan{
		PlanID:          successorID,
		PlannerID:       p.PlannerID,
		CreationDate:    now,
		Costs:           p.Costs,
		ProductName:     p.ProductName,
		ProductUnit:     p.ProductUnit,
		ProductAmount:   p.ProductAmount,
		Description:     p.Description,
		Timeframe:       p.Timeframe,
		IsPublicService: p.IsPublicService,
		AuditFields:     AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	p.Renewed = true
	p.LastUpdatedAt = now
	return successor, p, nil
}

// Hide marks an expired plan as hidden from listings. Hiding a plan that is
// not yet expired is a business rejection, not a programmer error.
func (p Plan) Hide(now time.Time) (Plan, error) {
	if !p.Expired {
		return Plan{}, ErrPlanNotExpired
	}
	p.HiddenByUser = true
	p.LastUpdatedAt = now
	return p, nil
}

// PricePerUnit is the plan's own cost per produced unit. Public-service
// plans distribute for free, so their price is zero. Cooperative pricing
// across several plans is computed by the pricing service, not here.
func (p Plan) PricePerUnit() decimal.Decimal {
	if p.IsPublicService || p.ProductAmount == 0 {
		return decimal.Zero
	}
	return p.Costs.Total().Div(decimal.NewFromInt(p.ProductAmount))
}

// ExpectedSalesValue equals total cost for productive plans and zero for
// public-service plans, which are not expected to sell.
func (p Plan) ExpectedSalesValue() decimal.Decimal {
	if p.IsPublicService {
		return decimal.Zero
	}
	return p.Costs.Total()
}
