package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type grantRepository struct {
	db *sql.DB
}

func NewGrantRepository(db *sql.DB) grant.GrantRepository {
	return &grantRepository{db: db}
}

const grantColumns = `id, employee_id, grant_date, hours, claim_deadline, claimed,
	claim_project, claim_description, claimed_at, source, source_id, created_at`

func scanGrant(row rowScanner) (grant.Grant, error) {
	var (
		g                    grant.Grant
		date, hours, source  string
		deadline, claimedAt  sql.NullString
		project, description sql.NullString
		createdAt            string
	)
	err := row.Scan(&g.ID, &g.EmployeeID, &date, &hours, &deadline, &g.Claimed,
		&project, &description, &claimedAt, &source, &g.SourceID, &createdAt)
	if err != nil {
		return grant.Grant{}, err
	}

	g.Source = grant.Source(source)
	if g.Date, err = parseDate(date); err != nil {
		return grant.Grant{}, err
	}
	if g.Hours, err = decimal.NewFromString(hours); err != nil {
		return grant.Grant{}, fmt.Errorf("decode grant hours: %w", err)
	}
	if g.ClaimDeadline, err = parseTimePtr(deadline); err != nil {
		return grant.Grant{}, err
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return grant.Grant{}, err
	}
	if g.Claimed {
		at, err := parseTimePtr(claimedAt)
		if err != nil {
			return grant.Grant{}, err
		}
		g.Claim = &grant.Claim{Project: project.String, Description: description.String}
		if at != nil {
			g.Claim.ClaimedAt = *at
		}
	}
	return g, nil
}

func (r *grantRepository) Create(ctx context.Context, g grant.Grant) (grant.Grant, error) {
	q := getQuerier(ctx, r.db)

	id := uuid.NewString()
	_, err := q.ExecContext(ctx, `
		INSERT INTO compensatory_grants (
			id, employee_id, grant_date, hours, claim_deadline, claimed, source, source_id, created_at
		) VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, id, g.EmployeeID, formatDate(g.Date), g.Hours.String(), formatTimePtr(g.ClaimDeadline),
		string(g.Source), g.SourceID, now())
	if err != nil {
		if isUniqueViolation(err) {
			return grant.Grant{}, grant.ErrDuplicateSource
		}
		return grant.Grant{}, fmt.Errorf("failed to create grant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *grantRepository) GetByID(ctx context.Context, id string) (grant.Grant, error) {
	return r.getOne(ctx, `SELECT `+grantColumns+` FROM compensatory_grants WHERE id = ?`, id)
}

func (r *grantRepository) GetBySource(ctx context.Context, source grant.Source, sourceID string) (grant.Grant, error) {
	return r.getOne(ctx, `SELECT `+grantColumns+` FROM compensatory_grants WHERE source = ? AND source_id = ?`,
		string(source), sourceID)
}

func (r *grantRepository) getOne(ctx context.Context, query string, args ...any) (grant.Grant, error) {
	q := getQuerier(ctx, r.db)

	g, err := scanGrant(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return grant.Grant{}, grant.ErrGrantNotFound
		}
		return grant.Grant{}, fmt.Errorf("failed to get grant: %w", err)
	}
	return g, nil
}

func (r *grantRepository) ListByEmployee(ctx context.Context, employeeID string) ([]grant.Grant, error) {
	return r.list(ctx, `SELECT `+grantColumns+` FROM compensatory_grants
		WHERE employee_id = ? ORDER BY grant_date DESC, created_at DESC`, employeeID)
}

func (r *grantRepository) ListDeadlineBetween(ctx context.Context, from, to time.Time) ([]grant.Grant, error) {
	return r.list(ctx, `SELECT `+grantColumns+` FROM compensatory_grants
		WHERE claimed = 0 AND claim_deadline > ? AND claim_deadline <= ?
		ORDER BY claim_deadline`, formatTime(from), formatTime(to))
}

func (r *grantRepository) list(ctx context.Context, query string, args ...any) ([]grant.Grant, error) {
	q := getQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
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

// MarkClaimed is the compare-and-set: the predicate carries every precondition,
// so of several concurrent claims only one can affect the row.
func (r *grantRepository) MarkClaimed(ctx context.Context, id string, claim grant.Claim, now time.Time) (bool, error) {
	q := getQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `
		UPDATE compensatory_grants
		SET claimed = 1, claim_project = ?, claim_description = ?, claimed_at = ?
		WHERE id = ? AND claimed = 0 AND (claim_deadline IS NULL OR claim_deadline > ?)
	`, claim.Project, claim.Description, formatTime(claim.ClaimedAt), id, formatTime(now))
	if err != nil {
		return false, fmt.Errorf("failed to claim grant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
