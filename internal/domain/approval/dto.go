package approval

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// SubmitRequest is the body of POST /requests. Fields are read according to Type.
type SubmitRequest struct {
	EmployeeID  string  `json:"employee_id,omitempty"` // empty means the acting user
	Type        string  `json:"type"`
	CompositeID *string `json:"composite_id,omitempty"`

	// Leave
	Category string `json:"category,omitempty"`
	Session  string `json:"session,omitempty"`

	// Leave and OD
	FromDate string  `json:"from_date,omitempty"`
	ToDate   string  `json:"to_date,omitempty"`
	FromTime *string `json:"from_time,omitempty"`
	ToTime   *string `json:"to_time,omitempty"`
	Purpose  string  `json:"purpose,omitempty"`
	Place    string  `json:"place,omitempty"`

	// Compensatory and PunchMissed
	Date      string                 `json:"date,omitempty"`
	Hours     validator.NumberString `json:"hours,omitempty"`
	PunchTime string                 `json:"punch_time,omitempty"`
	Direction string                 `json:"direction,omitempty"`

	Reason string `json:"reason,omitempty"`
}

// Validate stops at the first failing field.
func (r *SubmitRequest) Validate() error {
	t, ok := ParseType(r.Type)
	if !ok {
		return validator.Fail("type", "type must be one of leave, od, compensatory, punch_missed")
	}
	if r.CompositeID != nil && validator.IsEmpty(*r.CompositeID) {
		return validator.Fail("composite_id", "composite_id must not be empty")
	}

	switch t {
	case TypeLeave:
		if _, ok := policy.ParseLeaveCategory(r.Category); !ok {
			return validator.Fail("category", "category must be one of casual, medical, restricted_holiday, loss_of_pay")
		}
		from, to, err := validateRange(r.FromDate, r.ToDate)
		if err != nil {
			return err
		}
		session, ok := policy.ParseSession(r.Session)
		if !ok {
			return validator.Fail("session", "session must be one of full_day, first_half, second_half")
		}
		if session.IsHalf() && !from.Equal(to) {
			return validator.Fail("session", "half day leave must start and end on the same date")
		}
		if validator.IsEmpty(r.Reason) {
			return validator.Fail("reason", "reason is required")
		}

	case TypeOD:
		if _, _, err := validateRange(r.FromDate, r.ToDate); err != nil {
			return err
		}
		if r.FromTime != nil && !validator.IsValidClock(*r.FromTime) {
			return validator.Fail("from_time", "from_time must be HH:MM")
		}
		if r.ToTime != nil && !validator.IsValidClock(*r.ToTime) {
			return validator.Fail("to_time", "to_time must be HH:MM")
		}
		if validator.IsEmpty(r.Purpose) {
			return validator.Fail("purpose", "purpose is required")
		}
		if validator.IsEmpty(r.Place) {
			return validator.Fail("place", "place is required")
		}

	case TypeCompensatory:
		if _, ok := validator.IsValidDate(r.Date); !ok {
			return validator.Fail("date", "date is required and must be YYYY-MM-DD")
		}
		if validator.IsEmpty(r.Hours.String()) {
			return validator.Fail("hours", "hours is required")
		}
		if _, ok := validator.ParseNonNegative(r.Hours.String()); !ok {
			return validator.Fail("hours", "hours must be a number greater than or equal to 0")
		}
		if validator.IsEmpty(r.Reason) {
			return validator.Fail("reason", "reason is required")
		}

	case TypePunchMissed:
		if _, ok := validator.IsValidDate(r.Date); !ok {
			return validator.Fail("date", "date is required and must be YYYY-MM-DD")
		}
		if !validator.IsValidClock(r.PunchTime) {
			return validator.Fail("punch_time", "punch_time must be HH:MM")
		}
		if _, ok := parseDirection(r.Direction); !ok {
			return validator.Fail("direction", "direction must be in or out")
		}
		if validator.IsEmpty(r.Reason) {
			return validator.Fail("reason", "reason is required")
		}
	}
	return nil
}

func validateRange(fromStr, toStr string) (from, to time.Time, err error) {
	from, ok := validator.IsValidDate(fromStr)
	if !ok {
		return from, to, validator.Fail("from_date", "from_date is required and must be YYYY-MM-DD")
	}
	to, ok = validator.IsValidDate(toStr)
	if !ok {
		return from, to, validator.Fail("to_date", "to_date is required and must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return from, to, validator.Fail("to_date", "to_date must not be before from_date")
	}
	return from, to, nil
}

func parseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionIn, DirectionOut:
		return Direction(s), true
	}
	return "", false
}

// ToRequest converts a validated body. Status, ID and leave days are filled by the service.
func (r *SubmitRequest) ToRequest(employeeID string) Request {
	t, _ := ParseType(r.Type)
	req := Request{
		EmployeeID:  employeeID,
		Type:        t,
		CompositeID: r.CompositeID,
	}

	switch t {
	case TypeLeave:
		category, _ := policy.ParseLeaveCategory(r.Category)
		session, _ := policy.ParseSession(r.Session)
		from, _ := validator.IsValidDate(r.FromDate)
		to, _ := validator.IsValidDate(r.ToDate)
		req.Leave = &LeavePayload{
			Category: category,
			FromDate: from,
			ToDate:   to,
			Session:  session,
			Reason:   r.Reason,
		}
	case TypeOD:
		from, _ := validator.IsValidDate(r.FromDate)
		to, _ := validator.IsValidDate(r.ToDate)
		req.OD = &ODPayload{
			FromDate: from,
			ToDate:   to,
			FromTime: r.FromTime,
			ToTime:   r.ToTime,
			Purpose:  r.Purpose,
			Place:    r.Place,
		}
	case TypeCompensatory:
		date, _ := validator.IsValidDate(r.Date)
		hours, _ := validator.ParseNonNegative(r.Hours.String())
		req.Compensatory = &CompensatoryPayload{
			Date:   date,
			Hours:  hours,
			Reason: r.Reason,
		}
	case TypePunchMissed:
		date, _ := validator.IsValidDate(r.Date)
		direction, _ := parseDirection(r.Direction)
		req.PunchMissed = &PunchMissedPayload{
			Date:      date,
			PunchTime: r.PunchTime,
			Direction: direction,
			Reason:    r.Reason,
		}
	}
	return req
}

// DecideRequest is the body of POST /requests/{id}/decisions.
type DecideRequest struct {
	Role     string  `json:"role"`
	Decision string  `json:"decision"`
	Remark   *string `json:"remark,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if role, ok := user.ParseRole(r.Role); !ok || !role.IsApprover() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of hod, ceo, admin",
		})
	}
	if _, ok := ParseDecision(r.Decision); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequestFilter narrows List. Nil fields do not filter.
type RequestFilter struct {
	EmployeeID  *string
	Type        *Type
	Outcome     *Outcome
	CompositeID *string
	From        *time.Time // requests ending on or after
	To          *time.Time // requests starting on or before
	PendingFor  *user.Role // slot pending and aggregate still pending
	Page        int
	Limit       int
}

// Normalize applies default paging.
func (f *RequestFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type SlotResponse struct {
	State     string     `json:"state"`
	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	Remark    *string    `json:"remark,omitempty"`
}

type RequestResponse struct {
	ID          string                  `json:"id"`
	EmployeeID  string                  `json:"employee_id"`
	Type        string                  `json:"type"`
	CompositeID *string                 `json:"composite_id,omitempty"`
	Payload     map[string]any          `json:"payload"`
	Status      map[string]SlotResponse `json:"status"`
	Outcome     string                  `json:"outcome"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func ToResponse(r Request) RequestResponse {
	status := make(map[string]SlotResponse, len(user.ApproverRoles))
	for _, role := range user.ApproverRoles {
		slot := r.Status.Slot(role)
		status[string(role)] = SlotResponse{
			State:     string(slot.State),
			DecidedBy: slot.DecidedBy,
			DecidedAt: slot.DecidedAt,
			Remark:    slot.Remark,
		}
	}
	return RequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Type:        string(r.Type),
		CompositeID: r.CompositeID,
		Payload:     payloadResponse(r),
		Status:      status,
		Outcome:     string(r.Outcome()),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func payloadResponse(r Request) map[string]any {
	day := func(t time.Time) string { return t.Format(validator.DateLayout) }
	switch {
	case r.Leave != nil:
		return map[string]any{
			"category":  r.Leave.Category,
			"from_date": day(r.Leave.FromDate),
			"to_date":   day(r.Leave.ToDate),
			"session":   r.Leave.Session,
			"days":      r.Leave.Days,
			"reason":    r.Leave.Reason,
		}
	case r.OD != nil:
		m := map[string]any{
			"from_date": day(r.OD.FromDate),
			"to_date":   day(r.OD.ToDate),
			"purpose":   r.OD.Purpose,
			"place":     r.OD.Place,
		}
		if r.OD.FromTime != nil {
			m["from_time"] = *r.OD.FromTime
		}
		if r.OD.ToTime != nil {
			m["to_time"] = *r.OD.ToTime
		}
		return m
	case r.Compensatory != nil:
		return map[string]any{
			"date":   day(r.Compensatory.Date),
			"hours":  r.Compensatory.Hours.String(),
			"reason": r.Compensatory.Reason,
		}
	case r.PunchMissed != nil:
		return map[string]any{
			"date":       day(r.PunchMissed.Date),
			"punch_time": r.PunchMissed.PunchTime,
			"direction":  r.PunchMissed.Direction,
			"reason":     r.PunchMissed.Reason,
		}
	}
	return map[string]any{}
}

type ListRequestResponse struct {
	Requests   []RequestResponse `json:"requests"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
