package collector

import (
	"context"

	"chartd/internal/model"
)

// Fetcher retrieves chart inputs from a market data / analysis backend.
type Fetcher interface {
	FetchCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error)
	FetchMarkers(ctx context.Context, symbol, pattern string) ([]model.Marker, error)
	Name() string
}
