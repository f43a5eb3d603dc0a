package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	portsrepo "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	portssvc "github.com/NichtEuler/arbeitszeitapp/internal/core/ports/services"
	"github.com/NichtEuler/arbeitszeitapp/internal/dto"
)

// purchaseService manages product offers and purchases.
type purchaseService struct {
	BaseService
	offerRepo   portsrepo.OfferRepositoryWithTx
	planRepo    portsrepo.PlanReader
	companyRepo portsrepo.CompanyReader
	memberRepo  portsrepo.MemberReader
	pricingSvc  portssvc.PricingSvcFacade
	clock       portssvc.Clock
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(
	offerRepo portsrepo.OfferRepositoryWithTx,
	planRepo portsrepo.PlanReader,
	companyRepo portsrepo.CompanyReader,
	memberRepo portsrepo.MemberReader,
	pricingSvc portssvc.PricingSvcFacade,
	clock portssvc.Clock,
) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		offerRepo:   offerRepo,
		planRepo:    planRepo,
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		pricingSvc:  pricingSvc,
		clock:       clock,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreateOffer lists the product of one of the planner's active plans.
func (s *purchaseService) CreateOffer(ctx context.Context, plannerID string, req dto.CreateOfferRequest) (*domain.ProductOffer, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.PlannerID != plannerID {
		return nil, apperrors.ErrForbidden
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: products can only be offered for active plans", apperrors.ErrValidation)
	}

	now := s.clock.Now()
	offer := domain.ProductOffer{
		OfferID:         uuid.NewString(),
		PlanID:          plan.PlanID,
		Name:            req.Name,
		Description:     req.Description,
		AmountAvailable: req.Amount,
		Active:          true,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.offerRepo.SaveOffer(ctx, offer); err != nil {
		s.LogError(ctx, err, "Failed to save offer", slog.String("plan_id", plan.PlanID))
		return nil, err
	}
	return &offer, nil
}

// ListOffers retrieves active offers.
func (s *purchaseService) ListOffers(ctx context.Context, limit, offset int) ([]domain.ProductOffer, error) {
	return s.offerRepo.ListActiveOffers(ctx, limit, offset)
}

// PurchaseProduct buys from an offer. The inventory check-and-decrement,
// the balance movements, the ledger entry and the purchase record are
// committed in one storage transaction by the repository; overselling under
// concurrent purchases is excluded by a row lock on the offer.
func (s *purchaseService) PurchaseProduct(ctx context.Context, buyer domain.Buyer, req dto.PurchaseProductRequest) (*domain.Purchase, error) {
	offer, err := s.offerRepo.FindOfferByID(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}
	if !offer.Active {
		return nil, fmt.Errorf("%w: offer is no longer active", apperrors.ErrValidation)
	}
	plan, err := s.planRepo.FindPlanByID(ctx, offer.PlanID)
	if err != nil {
		return nil, err
	}
	planner, err := s.companyRepo.FindCompanyByID(ctx, plan.PlannerID)
	if err != nil {
		return nil, err
	}

	purpose := domain.PurchasePurpose(req.Purpose)
	debitAccountID, err := s.resolveDebitAccount(ctx, buyer, purpose)
	if err != nil {
		return nil, err
	}

	price, err := s.pricingSvc.CalculatePrice(ctx, plan.PlanID)
	if err != nil {
		return nil, err
	}
	total := price.Mul(decimal.NewFromInt(req.Amount))

	now := s.clock.Now()
	purchase := domain.Purchase{
		PurchaseID:   uuid.NewString(),
		Date:         now,
		PlanID:       plan.PlanID,
		Buyer:        buyer,
		PricePerUnit: price,
		Amount:       req.Amount,
		Purpose:      purpose,
	}
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Date:               now,
		SendingAccountID:   debitAccountID,
		ReceivingAccountID: planner.ProductAccountID,
		Amount:             total,
		Purpose:            fmt.Sprintf("Purchase of %d x %s (Plan-Id: %s)", req.Amount, plan.ProductName, plan.PlanID),
	}
	// The sale credits the planner's product account, writing off part of
	// the cost-of-goods liability booked at credit granting.
	balanceChanges := map[string]decimal.Decimal{
		debitAccountID:           total.Neg(),
		planner.ProductAccountID: total,
	}

	if err := s.offerRepo.RecordPurchase(ctx, offer.OfferID, purchase, txn, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to record purchase", slog.String("offer_id", offer.OfferID))
		return nil, err
	}
	s.LogInfo(ctx, "Purchase completed",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("plan_id", plan.PlanID),
		slog.Int64("amount", req.Amount))
	return &purchase, nil
}

// ListPurchases retrieves the purchases of an actor.
func (s *purchaseService) ListPurchases(ctx context.Context, buyer domain.Buyer) ([]domain.Purchase, error) {
	return s.offerRepo.ListPurchasesOfBuyer(ctx, buyer)
}

// resolveDebitAccount picks the buyer account the purchase is paid from,
// matching exhaustively on the buyer variant.
func (s *purchaseService) resolveDebitAccount(ctx context.Context, buyer domain.Buyer, purpose domain.PurchasePurpose) (string, error) {
	switch buyer.Kind {
	case domain.BuyerMember:
		if purpose != domain.PurposeConsumption {
			return "", fmt.Errorf("%w: members purchase for consumption only", apperrors.ErrValidation)
		}
		member, err := s.memberRepo.FindMemberByID(ctx, buyer.MemberID)
		if err != nil {
			return "", err
		}
		return member.AccountID, nil
	case domain.BuyerCompany:
		company, err := s.companyRepo.FindCompanyByID(ctx, buyer.CompanyID)
		if err != nil {
			return "", err
		}
		accountID, err := company.DebitAccountFor(purpose)
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return accountID, nil
	default:
		return "", fmt.Errorf("%w: unknown buyer kind %q", apperrors.ErrValidation, buyer.Kind)
	}
}
