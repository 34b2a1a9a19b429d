package collector

import (
	"context"
	"time"

	"chartd/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// When Candles/Markers are nil it generates a gentle U-shaped price series
// with a single inferred bowl marker, so a fresh chart has something to show.
type MockFetcher struct {
	Price   float64
	Candles []model.Candle
	Markers []model.Marker
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, _ string, limit int) ([]model.Candle, error) {
	if m.Candles != nil {
		return m.Candles, nil
	}
	return generateMockCandles(m.basePrice(), limit), nil
}

func (m *MockFetcher) FetchMarkers(_ context.Context, _, _ string) ([]model.Marker, error) {
	if m.Markers != nil {
		return m.Markers, nil
	}
	candles := generateMockCandles(m.basePrice(), 120)
	mid := candles[len(candles)/2]
	id := int64(1)
	return []model.Marker{{Time: mid.Time, PatternID: &id, Text: "Bowl"}}, nil
}

func (m *MockFetcher) basePrice() float64 {
	if m.Price > 0 {
		return m.Price
	}
	return 100
}

// generateMockCandles produces daily candles whose lows dip toward the
// middle of the series.
func generateMockCandles(basePrice float64, count int) []model.Candle {
	if count <= 0 {
		count = 120
	}
	candles := make([]model.Candle, count)
	start := time.Now().AddDate(0, 0, -count).Unix()
	mid := float64(count) / 2
	for i := 0; i < count; i++ {
		dist := (float64(i) - mid) / mid
		p := basePrice * (1 - 0.05*(1-dist*dist))
		candles[i] = model.Candle{
			Time:  start + int64(i)*24*60*60,
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return candles
}
