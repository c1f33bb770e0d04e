package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/google/uuid"
)

type approvalRequestRepository struct {
	db *sql.DB
}

func NewApprovalRequestRepository(db *sql.DB) approval.RequestRepository {
	return &approvalRequestRepository{db: db}
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

type slotColumns struct {
	state     string
	decidedBy sql.NullString
	decidedAt sql.NullString
	remark    sql.NullString
}

func (c slotColumns) toSlot() (approval.Slot, error) {
	decidedAt, err := parseTimePtr(c.decidedAt)
	if err != nil {
		return approval.Slot{}, err
	}
	return approval.Slot{
		State:     approval.SlotState(c.state),
		DecidedBy: nullString(c.decidedBy),
		DecidedAt: decidedAt,
		Remark:    nullString(c.remark),
	}, nil
}

func scanRequest(row rowScanner) (approval.Request, error) {
	var (
		r                    approval.Request
		typ                  string
		compositeID          sql.NullString
		payload              string
		hod, ceo, admin      slotColumns
		createdAt, updatedAt string
	)
	err := row.Scan(
		&r.ID, &r.EmployeeID, &typ, &compositeID, &payload,
		&hod.state, &hod.decidedBy, &hod.decidedAt, &hod.remark,
		&ceo.state, &ceo.decidedBy, &ceo.decidedAt, &ceo.remark,
		&admin.state, &admin.decidedBy, &admin.decidedAt, &admin.remark,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return approval.Request{}, err
	}

	r.Type = approval.Type(typ)
	r.CompositeID = nullString(compositeID)
	if err := r.UnmarshalPayload([]byte(payload)); err != nil {
		return approval.Request{}, err
	}
	if r.Status.HOD, err = hod.toSlot(); err != nil {
		return approval.Request{}, err
	}
	if r.Status.CEO, err = ceo.toSlot(); err != nil {
		return approval.Request{}, err
	}
	if r.Status.Admin, err = admin.toSlot(); err != nil {
		return approval.Request{}, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return approval.Request{}, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return approval.Request{}, err
	}
	return r, nil
}

func (r *approvalRequestRepository) Create(ctx context.Context, request approval.Request) (approval.Request, error) {
	q := getQuerier(ctx, r.db)

	payload, err := request.MarshalPayload()
	if err != nil {
		return approval.Request{}, err
	}
	from, to := request.Span()
	category, days := request.LeaveColumns()
	s := request.Status
	id := uuid.NewString()
	ts := now()

	_, err = q.ExecContext(ctx, `
		INSERT INTO approval_requests (
			id, employee_id, type, composite_id,
			start_date, end_date, leave_category, leave_days, payload,
			hod_status, ceo_status, admin_status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, request.EmployeeID, string(request.Type), request.CompositeID,
		formatDate(from), formatDate(to), category, days, string(payload),
		string(s.HOD.State), string(s.CEO.State), string(s.Admin.State),
		ts, ts)
	if err != nil {
		return approval.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *approvalRequestRepository) GetByID(ctx context.Context, id string) (approval.Request, error) {
	q := getQuerier(ctx, r.db)

	req, err := scanRequest(q.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM approval_requests WHERE id = ?`, id))
	if err != nil {
		if isNoRows(err) {
			return approval.Request{}, approval.ErrRequestNotFound
		}
		return approval.Request{}, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

func (r *approvalRequestRepository) List(ctx context.Context, filter approval.RequestFilter) ([]approval.Request, int64, error) {
	q := getQuerier(ctx, r.db)

	var (
		conds []string
		args  []any
	)
	if filter.EmployeeID != nil {
		conds = append(conds, "employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}
	if filter.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.CompositeID != nil {
		conds = append(conds, "composite_id = ?")
		args = append(args, *filter.CompositeID)
	}
	if filter.From != nil {
		conds = append(conds, "end_date >= ?")
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "start_date <= ?")
		args = append(args, formatDate(*filter.To))
	}
	if filter.Outcome != nil {
		conds = append(conds, "("+outcomeExpr+") = ?")
		args = append(args, string(*filter.Outcome))
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
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM approval_requests `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query := `SELECT ` + requestColumns + ` FROM approval_requests ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, (max(filter.Page, 1)-1)*filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
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

func (r *approvalRequestRepository) SetDecision(ctx context.Context, id string, role user.Role, slot approval.Slot) (approval.Request, error) {
	prefix, ok := slotPrefix(role)
	if !ok {
		return approval.Request{}, approval.ErrRoleNotRequired
	}
	q := getQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE approval_requests
		SET %[1]s_status = ?, %[1]s_decided_by = ?, %[1]s_decided_at = ?, %[1]s_remark = ?, updated_at = ?
		WHERE id = ? AND %[1]s_status <> 'not_required'
	`, prefix)

	res, err := q.ExecContext(ctx, query,
		string(slot.State), slot.DecidedBy, formatTimePtr(slot.DecidedAt), slot.Remark, now(), id)
	if err != nil {
		return approval.Request{}, fmt.Errorf("failed to record decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return approval.Request{}, err
	}

	req, err := r.GetByID(ctx, id)
	if err != nil {
		return approval.Request{}, err
	}
	if n == 0 {
		return approval.Request{}, approval.ErrRoleNotRequired
	}
	return req, nil
}

func (r *approvalRequestRepository) SumLeaveDays(ctx context.Context, employeeID string, category policy.LeaveCategory, year int) (float64, error) {
	q := getQuerier(ctx, r.db)

	var total float64
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(leave_days), 0)
		FROM approval_requests
		WHERE employee_id = ? AND type = 'leave' AND leave_category = ?
			AND substr(start_date, 1, 4) = ?
			AND (`+outcomeExpr+`) <> 'rejected'
	`, employeeID, string(category), fmt.Sprintf("%04d", year)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum leave days: %w", err)
	}
	return total, nil
}
