package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/google/uuid"
)

type holidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) CreateBatch(ctx context.Context, holidays []holiday.Holiday) (int, error) {
	if len(holidays) == 0 {
		return 0, nil
	}

	inserted := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := getQuerier(ctx, r.db)
		for _, h := range holidays {
			res, err := q.ExecContext(ctx, `
				INSERT INTO holidays (id, name, holiday_date, type, note, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (holiday_date, name) DO NOTHING
			`, uuid.NewString(), h.Name, formatDate(h.Date), string(h.Type), h.Note, now())
			if err != nil {
				return fmt.Errorf("failed to insert holiday %q: %w", h.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := getQuerier(ctx, r.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, holiday_date, type, note, created_at
		FROM holidays
		WHERE holiday_date >= ? AND holiday_date < ?
		ORDER BY holiday_date, name
	`, formatDate(from), formatDate(from.AddDate(1, 0, 0)))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var (
			h               holiday.Holiday
			date, createdAt string
			typ             string
			note            sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.Name, &date, &typ, &note, &createdAt); err != nil {
			return nil, err
		}
		if h.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if h.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		h.Type = holiday.HolidayType(typ)
		h.Note = nullString(note)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
