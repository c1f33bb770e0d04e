package holiday

import (
	"context"
)

type HolidayRepository interface {
	// CreateBatch inserts holidays, skipping any (date, name) pair that already exists.
	// It returns how many rows were inserted.
	CreateBatch(ctx context.Context, holidays []Holiday) (int, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
