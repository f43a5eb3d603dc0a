package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/NichtEuler/arbeitszeitapp/internal/apperrors"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
	"github.com/NichtEuler/arbeitszeitapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepository struct {
	BaseRepository
}

// NewCompanyRepository creates a new repository for company data.
func NewCompanyRepository(pool *pgxpool.Pool) repositories.CompanyRepositoryFacade {
	return &companyRepository{BaseRepository{Pool: pool}}
}

const companyColumns = `company_id, name, email, password_hash,
		means_account_id, raw_material_account_id, work_account_id, product_account_id,
		created_at, last_updated_at`

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&c.MeansAccountID,
		&c.RawMaterialAccountID,
		&c.WorkAccountID,
		&c.ProductAccountID,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	return c, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SaveCompanyWithAccounts inserts a company and its four accounts within a
// DB transaction. Registration either creates all five rows or none.
func (r *companyRepository) SaveCompanyWithAccounts(ctx context.Context, company domain.Company, accounts []domain.Account) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	companyQuery := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, companyQuery,
		company.CompanyID,
		company.Name,
		company.Email,
		company.PasswordHash,
		company.MeansAccountID,
		company.RawMaterialAccountID,
		company.WorkAccountID,
		company.ProductAccountID,
		company.CreatedAt,
		company.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert company %s: %w", company.CompanyID, err)
	}

	batch := &pgx.Batch{}
	accountQuery := `
		INSERT INTO accounts (account_id, owner_id, account_type, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, acc := range accounts {
		batch.Queue(accountQuery,
			acc.AccountID,
			acc.OwnerID,
			acc.AccountType,
			acc.Balance,
			acc.CreatedAt,
			acc.LastUpdatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute account batch for company %s: %w", company.CompanyID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration for company %s: %w", company.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *companyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	c, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	return &c, nil
}

// FindCompanyByEmail retrieves a company by its login email.
func (r *companyRepository) FindCompanyByEmail(ctx context.Context, email string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE email = $1;`
	c, err := scanCompany(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by email: %w", err)
	}
	return &c, nil
}

// AddWorkerToCompany records a member as worker of a company.
func (r *companyRepository) AddWorkerToCompany(ctx context.Context, companyID string, memberID string) error {
	query := `
		INSERT INTO company_workers (company_id, member_id)
		VALUES ($1, $2);
	`
	_, err := r.Pool.Exec(ctx, query, companyID, memberID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to add worker %s to company %s: %w", memberID, companyID, err)
	}
	return nil
}

// ListCompanyWorkers retrieves the members working at a company.
func (r *companyRepository) ListCompanyWorkers(ctx context.Context, companyID string) ([]domain.Member, error) {
	query := `
		SELECT m.member_id, m.name, m.email, m.password_hash, m.account_id, m.created_at, m.last_updated_at
		FROM members m
		JOIN company_workers cw ON cw.member_id = m.member_id
		WHERE cw.company_id = $1
		ORDER BY m.name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	workers := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker row for company %s: %w", companyID, err)
		}
		workers = append(workers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating worker rows for company %s: %w", companyID, err)
	}
	return workers, nil
}
