package collector

import (
	"context"
	"time"

	"ImpulseSystem/internal/model"
)

// Fetcher supplies price history. Implementations return bars ordered by time with unique
// timestamps; a zero start or end leaves that side of the range open.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, start, end time.Time, interval string) (*model.PriceSeries, error)
	Name() string
}
