package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// CreateBatch inserts all rows in one transaction so a failed import leaves nothing behind.
func (r *holidayRepositoryImpl) CreateBatch(ctx context.Context, holidays []holiday.Holiday) (int, error) {
	if len(holidays) == 0 {
		return 0, nil
	}

	inserted := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		for _, h := range holidays {
			tag, err := q.Exec(ctx, `
				INSERT INTO holidays (id, name, holiday_date, type, note, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				ON CONFLICT (holiday_date, name) DO NOTHING
			`, uuid.NewString(), h.Name, h.Date, string(h.Type), h.Note)
			if err != nil {
				return fmt.Errorf("failed to insert holiday %q: %w", h.Name, err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := q.Query(ctx, `
		SELECT id, name, holiday_date, type, note, created_at
		FROM holidays
		WHERE holiday_date >= $1 AND holiday_date < $2
		ORDER BY holiday_date, name
	`, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Type, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Date = toDate(h.Date)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
