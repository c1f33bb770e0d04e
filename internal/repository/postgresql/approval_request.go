package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type approvalRequestRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRequestRepository(db *database.DB) approval.RequestRepository {
	return &approvalRequestRepositoryImpl{db: db}
}

const requestColumns = `id, employee_id, type, composite_id, payload,
	hod_status, hod_decided_by, hod_decided_at, hod_remark,
	ceo_status, ceo_decided_by, ceo_decided_at, ceo_remark,
	admin_status, admin_decided_by, admin_decided_at, admin_remark,
	created_at, updated_at`

// outcomeExpr mirrors approval.Aggregate.
const outcomeExpr = `CASE
	WHEN 'rejected' IN (hod_status, ceo_status, admin_status) THEN 'rejected'
	WHEN hod_status IN ('approved', 'not_required')
		AND ceo_status IN ('approved', 'not_required')
		AND admin_status IN ('approved', 'not_required')
		AND 'approved' IN (hod_status, ceo_status, admin_status) THEN 'approved'
	ELSE 'pending' END`

// slotPrefix whitelists the column prefix for a role.
func slotPrefix(role user.Role) (string, bool) {
	switch role {
	case user.RoleHOD:
		return "hod", true
	case user.RoleCEO:
		return "ceo", true
	case user.RoleAdmin:
		return "admin", true
	}
	return "", false
}

func scanRequest(row pgx.Row) (approval.Request, error) {
	var (
		r       approval.Request
		payload []byte
	)
	err := row.Scan(
		&r.ID,
		&r.EmployeeID,
		&r.Type,
		&r.CompositeID,
		&payload,
		&r.Status.HOD.State, &r.Status.HOD.DecidedBy, &r.Status.HOD.DecidedAt, &r.Status.HOD.Remark,
		&r.Status.CEO.State, &r.Status.CEO.DecidedBy, &r.Status.CEO.DecidedAt, &r.Status.CEO.Remark,
		&r.Status.Admin.State, &r.Status.Admin.DecidedBy, &r.Status.Admin.DecidedAt, &r.Status.Admin.Remark,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return approval.Request{}, err
	}
	if err := r.UnmarshalPayload(payload); err != nil {
		return approval.Request{}, err
	}
	return r, nil
}

func (r *approvalRequestRepositoryImpl) Create(ctx context.Context, request approval.Request) (approval.Request, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := request.MarshalPayload()
	if err != nil {
		return approval.Request{}, err
	}
	from, to := request.Span()
	category, days := request.LeaveColumns()
	s := request.Status

	query := `
		INSERT INTO approval_requests (
			id, employee_id, type, composite_id,
			start_date, end_date, leave_category, leave_days, payload,
			hod_status, ceo_status, admin_status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12,
			NOW(), NOW()
		) RETURNING ` + requestColumns

	created, err := scanRequest(q.QueryRow(ctx, query,
		uuid.NewString(), request.EmployeeID, string(request.Type), request.CompositeID,
		from, to, category, days, payload,
		string(s.HOD.State), string(s.CEO.State), string(s.Admin.State),
	))
	if err != nil {
		return approval.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return created, nil
}

func (r *approvalRequestRepositoryImpl) GetByID(ctx context.Context, id string) (approval.Request, error) {
	if !validator.IsValidUUID(id) {
		return approval.Request{}, approval.ErrRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM approval_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Request{}, approval.ErrRequestNotFound
		}
		return approval.Request{}, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

func (r *approvalRequestRepositoryImpl) List(ctx context.Context, filter approval.RequestFilter) ([]approval.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != nil {
		if !validator.IsValidUUID(*filter.EmployeeID) {
			return nil, 0, nil
		}
		add("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Type != nil {
		add("type = $%d", string(*filter.Type))
	}
	if filter.CompositeID != nil {
		add("composite_id = $%d", *filter.CompositeID)
	}
	if filter.From != nil {
		add("end_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("start_date <= $%d", *filter.To)
	}
	if filter.Outcome != nil {
		add("("+outcomeExpr+") = $%d", string(*filter.Outcome))
	}
	if filter.PendingFor != nil {
		prefix, ok := slotPrefix(*filter.PendingFor)
		if !ok {
			return nil, 0, nil
		}
		conds = append(conds, prefix+"_status = 'pending'", "("+outcomeExpr+") = 'pending'")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM approval_requests `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query := `SELECT ` + requestColumns + ` FROM approval_requests ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, (max(filter.Page, 1)-1)*filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []approval.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

func (r *approvalRequestRepositoryImpl) SetDecision(ctx context.Context, id string, role user.Role, slot approval.Slot) (approval.Request, error) {
	prefix, ok := slotPrefix(role)
	if !ok {
		return approval.Request{}, approval.ErrRoleNotRequired
	}
	if !validator.IsValidUUID(id) {
		return approval.Request{}, approval.ErrRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE approval_requests
		SET %[1]s_status = $2, %[1]s_decided_by = $3, %[1]s_decided_at = $4, %[1]s_remark = $5, updated_at = NOW()
		WHERE id = $1 AND %[1]s_status <> 'not_required'
		RETURNING `+requestColumns, prefix)

	updated, err := scanRequest(q.QueryRow(ctx, query,
		id, string(slot.State), slot.DecidedBy, slot.DecidedAt, slot.Remark,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return approval.Request{}, fmt.Errorf("failed to record decision: %w", err)
	}

	// Nothing matched: either the request is missing or the role is not on it.
	if _, err := r.GetByID(ctx, id); err != nil {
		return approval.Request{}, err
	}
	return approval.Request{}, approval.ErrRoleNotRequired
}

func (r *approvalRequestRepositoryImpl) SumLeaveDays(ctx context.Context, employeeID string, category policy.LeaveCategory, year int) (float64, error) {
	if !validator.IsValidUUID(employeeID) {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	var total float64
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(leave_days), 0)::float8
		FROM approval_requests
		WHERE employee_id = $1 AND type = 'leave' AND leave_category = $2
			AND EXTRACT(YEAR FROM start_date) = $3
			AND (`+outcomeExpr+`) <> 'rejected'
	`, employeeID, string(category), year).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum leave days: %w", err)
	}
	return total, nil
}
