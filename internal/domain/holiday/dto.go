package holiday

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// ImportRow is one uploaded holiday row. Files and JSON bodies share it.
type ImportRow struct {
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`
	Type string `json:"type" yaml:"type"`
	Note string `json:"note" yaml:"note"`
}

type ImportRequest struct {
	Rows []ImportRow `json:"rows" yaml:"holidays"`
}

type ImportResponse struct {
	Received int `json:"received"`
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

// Accepted upload date layouts, tried in order.
var importDateLayouts = []string{
	validator.DateLayout,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2 January 2006",
	"January 2, 2006",
}

func parseImportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseRows converts upload rows into holidays. Rows with a missing name or a
// missing or unparseable date are dropped.
func ParseRows(rows []ImportRow) (kept []Holiday, dropped int) {
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			dropped++
			continue
		}
		date, ok := parseImportDate(row.Date)
		if !ok {
			dropped++
			continue
		}
		h := Holiday{
			Name: name,
			Date: date,
			Type: ParseHolidayType(row.Type),
		}
		if note := strings.TrimSpace(row.Note); note != "" {
			h.Note = &note
		}
		kept = append(kept, h)
	}
	return kept, dropped
}

type HolidayResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Date string  `json:"date"`
	Type string  `json:"type"`
	Note *string `json:"note,omitempty"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Name: h.Name,
		Date: h.Date.Format(validator.DateLayout),
		Type: string(h.Type),
		Note: h.Note,
	}
}

type CheckResponse struct {
	Date                string  `json:"date"`
	IsHoliday           bool    `json:"is_holiday"`
	IsRestrictedHoliday bool    `json:"is_restricted_holiday"`
	Name                *string `json:"name,omitempty"`
}
