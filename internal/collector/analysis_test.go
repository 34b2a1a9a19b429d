package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartd/internal/model"
)

func TestAnalysisFetcher_FetchCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chart/history", r.URL.Path)
		assert.Equal(t, "NIFTY", r.URL.Query().Get("symbol"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		// Out of order with a duplicate; the fetcher must sort and dedup.
		json.NewEncoder(w).Encode([]model.Candle{
			{Time: 200, Open: 2, High: 3, Low: 1, Close: 2},
			{Time: 100, Open: 1, High: 2, Low: 1, Close: 1},
			{Time: 200, Open: 2, High: 3, Low: 1, Close: 2},
		})
	}))
	defer srv.Close()

	f := NewAnalysisFetcher(srv.URL, "secret", "")
	candles, err := f.FetchCandles(context.Background(), "NIFTY", 300)

	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, int64(100), candles[0].Time)
	assert.Equal(t, int64(200), candles[1].Time)
}

func TestAnalysisFetcher_FetchMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chart/markers", r.URL.Path)
		assert.Equal(t, "bowl", r.URL.Query().Get("pattern"))
		w.Write([]byte(`[{"time":100,"pattern_id":3,"text":"Bowl"},{"time":200,"range_low":90,"range_high":95,"range_start_time":100,"range_end_time":300,"nrb_id":1}]`))
	}))
	defer srv.Close()

	f := NewAnalysisFetcher(srv.URL, "", "")
	markers, err := f.FetchMarkers(context.Background(), "NIFTY", "bowl")

	require.NoError(t, err)
	require.Len(t, markers, 2)
	require.NotNil(t, markers[0].PatternID)
	assert.Equal(t, int64(3), *markers[0].PatternID)
	assert.True(t, markers[1].HasRange())
	require.NotNil(t, markers[1].NRBID)
	assert.Equal(t, int64(1), *markers[1].NRBID)
}

func TestAnalysisFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewAnalysisFetcher(srv.URL, "", "")
	_, err := f.FetchCandles(context.Background(), "NIFTY", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestCollector_CollectAndSelect(t *testing.T) {
	mock := &MockFetcher{
		Candles: []model.Candle{{Time: 100, Open: 1, High: 2, Low: 1, Close: 1}},
		Markers: []model.Marker{{Time: 100}},
	}
	col := NewCollector(mock, "NIFTY", "bowl", 300)

	data, err := col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NIFTY", data.Symbol)
	assert.Equal(t, "NIFTY bowl patterns", data.Title)
	assert.Len(t, data.Candles, 1)

	col.Select("BANKNIFTY", "nrb")
	data, err = col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BANKNIFTY", data.Symbol)
	assert.Equal(t, "BANKNIFTY nrb patterns", data.Title)

	// Empty symbol keeps the previous one; empty pattern clears it.
	col.Select("", "")
	symbol, pattern := col.Target()
	assert.Equal(t, "BANKNIFTY", symbol)
	assert.Empty(t, pattern)
}
