package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	Import(ctx context.Context, req ImportRequest) (ImportResponse, error)
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Check(ctx context.Context, date time.Time) (CheckResponse, error)
}
