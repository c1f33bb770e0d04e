package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type grantRepositoryImpl struct {
	db *database.DB
}

func NewGrantRepository(db *database.DB) grant.GrantRepository {
	return &grantRepositoryImpl{db: db}
}

const grantColumns = `id, employee_id, grant_date, hours::text, claim_deadline, claimed,
	claim_project, claim_description, claimed_at, source, source_id, created_at`

func scanGrant(row pgx.Row) (grant.Grant, error) {
	var (
		g           grant.Grant
		hours       string
		project     *string
		description *string
		claimedAt   *time.Time
	)
	err := row.Scan(
		&g.ID,
		&g.EmployeeID,
		&g.Date,
		&hours,
		&g.ClaimDeadline,
		&g.Claimed,
		&project,
		&description,
		&claimedAt,
		&g.Source,
		&g.SourceID,
		&g.CreatedAt,
	)
	if err != nil {
		return grant.Grant{}, err
	}
	if g.Hours, err = decimal.NewFromString(hours); err != nil {
		return grant.Grant{}, fmt.Errorf("decode grant hours: %w", err)
	}
	g.Date = toDate(g.Date)
	if g.Claimed && claimedAt != nil {
		g.Claim = &grant.Claim{ClaimedAt: *claimedAt}
		if project != nil {
			g.Claim.Project = *project
		}
		if description != nil {
			g.Claim.Description = *description
		}
	}
	return g, nil
}

func (r *grantRepositoryImpl) Create(ctx context.Context, g grant.Grant) (grant.Grant, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanGrant(q.QueryRow(ctx, `
		INSERT INTO compensatory_grants (
			id, employee_id, grant_date, hours, claim_deadline, claimed, source, source_id, created_at
		) VALUES ($1, $2, $3, $4::numeric, $5, FALSE, $6, $7, NOW())
		RETURNING `+grantColumns,
		uuid.NewString(), g.EmployeeID, g.Date, g.Hours.String(), g.ClaimDeadline, string(g.Source), g.SourceID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return grant.Grant{}, grant.ErrDuplicateSource
		}
		return grant.Grant{}, fmt.Errorf("failed to create grant: %w", err)
	}
	return created, nil
}

func (r *grantRepositoryImpl) GetByID(ctx context.Context, id string) (grant.Grant, error) {
	if !validator.IsValidUUID(id) {
		return grant.Grant{}, grant.ErrGrantNotFound
	}
	return r.getOne(ctx, `SELECT `+grantColumns+` FROM compensatory_grants WHERE id = $1`, id)
}

func (r *grantRepositoryImpl) GetBySource(ctx context.Context, source grant.Source, sourceID string) (grant.Grant, error) {
	return r.getOne(ctx, `SELECT `+grantColumns+` FROM compensatory_grants WHERE source = $1 AND source_id = $2`,
		string(source), sourceID)
}

func (r *grantRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (grant.Grant, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanGrant(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return grant.Grant{}, grant.ErrGrantNotFound
		}
		return grant.Grant{}, fmt.Errorf("failed to get grant: %w", err)
	}
	return g, nil
}

func (r *grantRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]grant.Grant, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+grantColumns+` FROM compensatory_grants
		WHERE employee_id = $1 ORDER BY grant_date DESC, created_at DESC`, employeeID)
}

func (r *grantRepositoryImpl) ListDeadlineBetween(ctx context.Context, from, to time.Time) ([]grant.Grant, error) {
	return r.list(ctx, `SELECT `+grantColumns+` FROM compensatory_grants
		WHERE NOT claimed AND claim_deadline > $1 AND claim_deadline <= $2
		ORDER BY claim_deadline`, from, to)
}

func (r *grantRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]grant.Grant, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	defer rows.Close()

	var grants []grant.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// MarkClaimed is the compare-and-set: one UPDATE whose predicate carries every
// precondition, so concurrent claims cannot both match.
func (r *grantRepositoryImpl) MarkClaimed(ctx context.Context, id string, claim grant.Claim, now time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE compensatory_grants
		SET claimed = TRUE, claim_project = $2, claim_description = $3, claimed_at = $4
		WHERE id = $1 AND claimed = FALSE AND (claim_deadline IS NULL OR claim_deadline > $5)
	`, id, claim.Project, claim.Description, claim.ClaimedAt, now)
	if err != nil {
		return false, fmt.Errorf("failed to claim grant: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
