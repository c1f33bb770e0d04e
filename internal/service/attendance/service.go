package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	shiftService shift.ShiftService
	grantService grant.GrantService
	clock        clock.Clock
	logger       *slog.Logger
}

// RecordPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordPunch(ctx context.Context, actor user.ActingUser, req attendance.RecordPunchRequest) (attendance.AttendanceResponse, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !actor.IsAdmin() {
		return attendance.AttendanceResponse{}, attendance.ErrPunchForOther
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, in, out := req.Instants(a.clock.Location())
	if date.After(clock.Today(a.clock)) {
		return attendance.AttendanceResponse{}, attendance.ErrFuturePunch
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	sh, err := a.shiftService.ShiftFor(ctx, emp.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve shift: %w", err)
	}

	cal, err := policy.LoadCalendar(ctx, a.HolidayRepository, date, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	isHoliday := cal.IsHoliday(date)

	worked := decimal.NewFromInt(int64(out.Sub(in) / time.Minute)).Div(decimal.NewFromInt(60)).Round(2)
	overtime := policy.OvertimeHours(worked, sh.Length(), isHoliday)

	record, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:    emp.ID,
		Date:          date,
		ClockIn:       in,
		ClockOut:      out,
		WorkedHours:   worked,
		OvertimeHours: overtime,
		IsHoliday:     isHoliday,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.logger.Info("punch recorded",
		"attendance_id", record.ID, "employee_id", emp.ID, "date", date.Format(validator.DateLayout),
		"worked_hours", worked.String(), "overtime_hours", overtime.String(), "holiday", isHoliday)

	if !policy.IsOvertimeEligible(emp.Department, emp.Designation) || overtime.LessThan(policy.MinClaimableHours) {
		return attendance.ToResponse(record), nil
	}

	g, err := a.grantService.Issue(ctx, grant.Grant{
		EmployeeID: emp.ID,
		Date:       date,
		Hours:      overtime,
		Source:     grant.SourceAttendance,
		SourceID:   record.ID,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to issue grant for attendance %s: %w", record.ID, err)
	}
	if err := a.AttendanceRepository.SetGrant(ctx, record.ID, g.ID); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to link grant: %w", err)
	}
	record.GrantID = &g.ID

	return attendance.ToResponse(record), nil
}

// GetMyAttendance defaults to the last 30 days.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, actor user.ActingUser, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	to := clock.Today(a.clock)
	from := to.AddDate(0, 0, -30)

	if filter.From != nil {
		d, ok := validator.IsValidDate(*filter.From)
		if !ok {
			return nil, validator.Fail("from", "from must be YYYY-MM-DD")
		}
		from = d
	}
	if filter.To != nil {
		d, ok := validator.IsValidDate(*filter.To)
		if !ok {
			return nil, validator.Fail("to", "to must be YYYY-MM-DD")
		}
		to = d
	}
	if to.Before(from) {
		return nil, validator.Fail("to", "to must not be before from")
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, actor.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.ToResponse(r))
	}
	return out, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	shiftService shift.ShiftService,
	grantService grant.GrantService,
	clk clock.Clock,
	logger *slog.Logger,
) attendance.AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		HolidayRepository:    holidayRepo,
		shiftService:         shiftService,
		grantService:         grantService,
		clock:                clk,
		logger:               logger.With("component", "attendance"),
	}
}
