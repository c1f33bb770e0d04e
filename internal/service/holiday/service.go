package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/policy"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewHolidayService(repo holiday.HolidayRepository, clk clock.Clock, logger *slog.Logger) holiday.HolidayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HolidayServiceImpl{
		HolidayRepository: repo,
		clock:             clk,
		logger:            logger.With("component", "holiday"),
	}
}

// Import implements holiday.HolidayService.
func (s *HolidayServiceImpl) Import(ctx context.Context, req holiday.ImportRequest) (holiday.ImportResponse, error) {
	kept, dropped := holiday.ParseRows(req.Rows)
	if len(kept) == 0 {
		return holiday.ImportResponse{Received: len(req.Rows), Dropped: dropped}, holiday.ErrNothingToImport
	}

	imported, err := s.HolidayRepository.CreateBatch(ctx, kept)
	if err != nil {
		return holiday.ImportResponse{}, fmt.Errorf("failed to import holidays: %w", err)
	}

	s.logger.Info("holidays imported", "received", len(req.Rows), "imported", imported, "dropped", dropped)
	return holiday.ImportResponse{
		Received: len(req.Rows),
		Imported: imported,
		Dropped:  dropped,
	}, nil
}

// List returns the stored holidays of the year together with the recurring
// national ones, ordered by date.
func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	if year == 0 {
		year = clock.Today(s.clock).Year()
	}
	stored, err := s.HolidayRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	out := make([]holiday.HolidayResponse, 0, len(stored)+len(policy.DefaultFixedHolidays))
	seen := make(map[string]bool, len(stored))
	for _, h := range stored {
		seen[h.Date.Format(validator.DateLayout)] = true
		out = append(out, holiday.ToResponse(h))
	}

	for _, h := range policy.RecurringHolidays(year) {
		if !seen[h.Date.Format(validator.DateLayout)] {
			out = append(out, holiday.ToResponse(h))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Check implements holiday.HolidayService.
func (s *HolidayServiceImpl) Check(ctx context.Context, date time.Time) (holiday.CheckResponse, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	cal, err := policy.LoadCalendar(ctx, s.HolidayRepository, date, date)
	if err != nil {
		return holiday.CheckResponse{}, err
	}

	resp := holiday.CheckResponse{
		Date:                date.Format(validator.DateLayout),
		IsHoliday:           cal.IsHoliday(date),
		IsRestrictedHoliday: cal.IsRestrictedHoliday(date),
	}
	if name, ok := cal.HolidayName(date); ok {
		resp.Name = &name
	}
	return resp, nil
}
