package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type planRepository struct {
	BaseRepository
}

// NewPlanRepository creates a new repository for plan and draft data.
func NewPlanRepository(pool *pgxpool.Pool) repositories.PlanRepositoryWithTx {
	return &planRepository{BaseRepository{Pool: pool}}
}

const planColumns = `plan_id, planner_id, creation_date, labour_cost, resource_cost, means_cost,
		product_name, product_unit, product_amount, description, timeframe, is_public_service,
		approved, approval_date, approval_reason, is_active, expired, renewed, hidden_by_user,
		cooperation_id, activation_date, expiration_date, last_certificate_payout,
		created_at, last_updated_at`

func scanPlan(row pgx.Row) (domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(
		&p.PlanID,
		&p.PlannerID,
		&p.CreationDate,
		&p.Costs.LabourCost,
		&p.Costs.ResourceCost,
		&p.Costs.MeansCost,
		&p.ProductName,
		&p.ProductUnit,
		&p.ProductAmount,
		&p.Description,
		&p.Timeframe,
		&p.IsPublicService,
		&p.Approved,
		&p.ApprovalDate,
		&p.ApprovalReason,
		&p.IsActive,
		&p.Expired,
		&p.Renewed,
		&p.HiddenByUser,
		&p.CooperationID,
		&p.ActivationDate,
		&p.ExpirationDate,
		&p.LastCertificatePayout,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	return p, err
}

func (r *planRepository) queryPlans(ctx context.Context, query string, args ...any) ([]domain.Plan, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}
	return plans, nil
}

// SavePlan inserts a new plan row.
func (r *planRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err := r.Pool.Exec(ctx, query,
		plan.PlanID,
		plan.PlannerID,
		plan.CreationDate,
		plan.Costs.LabourCost,
		plan.Costs.ResourceCost,
		plan.Costs.MeansCost,
		plan.ProductName,
		plan.ProductUnit,
		plan.ProductAmount,
		plan.Description,
		plan.Timeframe,
		plan.IsPublicService,
		plan.Approved,
		plan.ApprovalDate,
		plan.ApprovalReason,
		plan.IsActive,
		plan.Expired,
		plan.Renewed,
		plan.HiddenByUser,
		plan.CooperationID,
		plan.ActivationDate,
		plan.ExpirationDate,
		plan.LastCertificatePayout,
		plan.CreatedAt,
		plan.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.PlanID, err)
	}
	return nil
}

// UpdatePlan updates the lifecycle fields of an existing plan. The filed
// costs and product data are immutable after submission, so they are not
// part of the update.
func (r *planRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		UPDATE plans
		SET approved = $1, approval_date = $2, approval_reason = $3,
		    is_active = $4, expired = $5, renewed = $6, hidden_by_user = $7,
		    cooperation_id = $8, activation_date = $9, expiration_date = $10,
		    last_certificate_payout = $11, last_updated_at = $12
		WHERE plan_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		plan.Approved,
		plan.ApprovalDate,
		plan.ApprovalReason,
		plan.IsActive,
		plan.Expired,
		plan.Renewed,
		plan.HiddenByUser,
		plan.CooperationID,
		plan.ActivationDate,
		plan.ExpirationDate,
		plan.LastCertificatePayout,
		plan.LastUpdatedAt,
		plan.PlanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", plan.PlanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ActivatePlan persists the credit grant within a DB transaction: the
// activated plan, the four ledger transactions and the balance deltas on
// the planner's and social accounting's accounts.
func (r *planRepository) ActivatePlan(ctx context.Context, plan domain.Plan, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// 1. Lock the affected accounts in a deterministic order.
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	lockQuery := `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for plan %s: %w", plan.PlanID, err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if locked != len(accountIDs) {
		return apperrors.ErrNotFound
	}

	// 2. Flip the plan to active. Guarding on is_active = FALSE makes a
	// concurrent double grant fail instead of paying out twice.
	planQuery := `
		UPDATE plans
		SET is_active = TRUE, activation_date = $1, expiration_date = $2, last_updated_at = $3
		WHERE plan_id = $4 AND is_active = FALSE;
	`
	tag, err := tx.Exec(ctx, planQuery,
		plan.ActivationDate,
		plan.ExpirationDate,
		plan.LastUpdatedAt,
		plan.PlanID,
	)
	if err != nil {
		return fmt.Errorf("failed to activate plan %s: %w", plan.PlanID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCreditAlreadyGranted
	}

	// 3. Apply the balance deltas and append the ledger entries in one batch.
	batch := &pgx.Batch{}
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2
		WHERE account_id = $3;
	`
	for accountID, delta := range balanceChanges {
		batch.Queue(balanceQuery, delta, plan.LastUpdatedAt, accountID)
	}
	txnQuery := `
		INSERT INTO transactions (transaction_id, date, sending_account_id, receiving_account_id, amount, purpose)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, txn := range transactions {
		batch.Queue(txnQuery,
			txn.TransactionID,
			txn.Date,
			txn.SendingAccountID,
			txn.ReceivingAccountID,
			txn.Amount,
			txn.Purpose,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute credit grant batch for plan %s: %w", plan.PlanID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit credit grant for plan %s: %w", plan.PlanID, err)
	}
	return nil
}

// FindPlanByID retrieves a plan by its ID.
func (r *planRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1;`
	p, err := scanPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by ID %s: %w", planID, err)
	}
	return &p, nil
}

// ListActivePlans retrieves all active, non-hidden plans.
func (r *planRepository) ListActivePlans(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE is_active = TRUE AND expired = FALSE AND hidden_by_user = FALSE
		ORDER BY activation_date DESC;
	`
	return r.queryPlans(ctx, query)
}

// ListPlansByPlanner retrieves all plans filed by a company, newest first.
func (r *planRepository) ListPlansByPlanner(ctx context.Context, plannerID string) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE planner_id = $1 AND hidden_by_user = FALSE
		ORDER BY creation_date DESC;
	`
	return r.queryPlans(ctx, query, plannerID)
}

// AllProductivePlansApprovedActiveNotExpired retrieves the productive half
// of the payout-factor snapshot.
func (r *planRepository) AllProductivePlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE approved = TRUE AND is_active = TRUE AND expired = FALSE AND is_public_service = FALSE;
	`
	return r.queryPlans(ctx, query)
}

// AllPublicPlansApprovedActiveNotExpired retrieves the public-service half
// of the payout-factor snapshot.
func (r *planRepository) AllPublicPlansApprovedActiveNotExpired(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE approved = TRUE AND is_active = TRUE AND expired = FALSE AND is_public_service = TRUE;
	`
	return r.queryPlans(ctx, query)
}

// ThreeLatestActivePlansByActivationDate retrieves the three most recently
// activated plans for the dashboard.
func (r *planRepository) ThreeLatestActivePlansByActivationDate(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE is_active = TRUE AND expired = FALSE AND hidden_by_user = FALSE
		ORDER BY activation_date DESC
		LIMIT 3;
	`
	return r.queryPlans(ctx, query)
}

// QueryPlans retrieves active plans matching the query. An empty term
// matches every active plan.
func (r *planRepository) QueryPlans(ctx context.Context, query repositories.PlanQuery) ([]domain.Plan, error) {
	base := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE is_active = TRUE AND expired = FALSE AND hidden_by_user = FALSE
	`
	if query.Term == "" {
		return r.queryPlans(ctx, base+` ORDER BY activation_date DESC;`)
	}
	switch query.Filter {
	case repositories.FilterByPlanID:
		return r.queryPlans(ctx, base+` AND plan_id::text ILIKE '%' || $1 || '%' ORDER BY activation_date DESC;`, query.Term)
	case repositories.FilterByProductName:
		return r.queryPlans(ctx, base+` AND product_name ILIKE '%' || $1 || '%' ORDER BY activation_date DESC;`, query.Term)
	default:
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown plan filter %q", query.Filter), apperrors.ErrValidation)
	}
}

const draftColumns = `draft_id, planner_id, creation_date, labour_cost, resource_cost, means_cost,
		product_name, product_unit, product_amount, description, timeframe, is_public_service,
		created_at, last_updated_at`

func scanDraft(row pgx.Row) (domain.PlanDraft, error) {
	var d domain.PlanDraft
	err := row.Scan(
		&d.DraftID,
		&d.PlannerID,
		&d.CreationDate,
		&d.Costs.LabourCost,
		&d.Costs.ResourceCost,
		&d.Costs.MeansCost,
		&d.ProductName,
		&d.ProductUnit,
		&d.ProductAmount,
		&d.Description,
		&d.Timeframe,
		&d.IsPublicService,
		&d.CreatedAt,
		&d.LastUpdatedAt,
	)
	return d, err
}

// SaveDraft inserts a new plan draft.
func (r *planRepository) SaveDraft(ctx context.Context, draft domain.PlanDraft) error {
	query := `
		INSERT INTO plan_drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		draft.DraftID,
		draft.PlannerID,
		draft.CreationDate,
		draft.Costs.LabourCost,
		draft.Costs.ResourceCost,
		draft.Costs.MeansCost,
		draft.ProductName,
		draft.ProductUnit,
		draft.ProductAmount,
		draft.Description,
		draft.Timeframe,
		draft.IsPublicService,
		draft.CreatedAt,
		draft.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.DraftID, err)
	}
	return nil
}

// FindDraftByID retrieves a draft by its ID.
func (r *planRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.PlanDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM plan_drafts WHERE draft_id = $1;`
	d, err := scanDraft(r.Pool.QueryRow(ctx, query, draftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft by ID %s: %w", draftID, err)
	}
	return &d, nil
}

// ListDraftsByPlanner retrieves all drafts of a company, newest first.
func (r *planRepository) ListDraftsByPlanner(ctx context.Context, plannerID string) ([]domain.PlanDraft, error) {
	query := `
		SELECT ` + draftColumns + `
		FROM plan_drafts
		WHERE planner_id = $1
		ORDER BY creation_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, plannerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts for planner %s: %w", plannerID, err)
	}
	defer rows.Close()

	drafts := []domain.PlanDraft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft row for planner %s: %w", plannerID, err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft rows for planner %s: %w", plannerID, err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft row.
func (r *planRepository) DeleteDraft(ctx context.Context, draftID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM plan_drafts WHERE draft_id = $1;`, draftID)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
