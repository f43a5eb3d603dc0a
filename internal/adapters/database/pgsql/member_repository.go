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
)

type memberRepository struct {
	BaseRepository
}

// NewMemberRepository creates a new repository for member data.
func NewMemberRepository(pool *pgxpool.Pool) repositories.MemberRepositoryFacade {
	return &memberRepository{BaseRepository{Pool: pool}}
}

const memberColumns = `member_id, name, email, password_hash, account_id, created_at, last_updated_at`

func scanMember(row pgx.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.AccountID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveMemberWithAccount inserts a member and their account within a DB
// transaction.
func (r *memberRepository) SaveMemberWithAccount(ctx context.Context, member domain.Member, account domain.Account) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	memberQuery := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, memberQuery,
		member.MemberID,
		member.Name,
		member.Email,
		member.PasswordHash,
		member.AccountID,
		member.CreatedAt,
		member.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert member %s: %w", member.MemberID, err)
	}

	accountQuery := `
		INSERT INTO accounts (account_id, owner_id, account_type, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, accountQuery,
		account.AccountID,
		account.OwnerID,
		account.AccountType,
		account.Balance,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account for member %s: %w", member.MemberID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration for member %s: %w", member.MemberID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by its ID.
func (r *memberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return &m, nil
}

// FindMemberByEmail retrieves a member by their login email.
func (r *memberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1;`
	m, err := scanMember(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by email: %w", err)
	}
	return &m, nil
}
