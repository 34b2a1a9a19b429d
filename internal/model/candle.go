package model

// Candle is a single OHLC bar. Time is unix seconds; within a series times
// are strictly increasing and unique.
type Candle struct {
	Time  int64   `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Point is a single (time, value) sample on an overlay line series.
type Point struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}
