package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"chartd/internal/model"
)

// AnalysisFetcher implements Fetcher against the pattern-analysis REST API.
type AnalysisFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAnalysisFetcher creates a fetcher with optional proxy support.
func NewAnalysisFetcher(baseURL, apiKey, proxyURL string) *AnalysisFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AnalysisFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AnalysisFetcher) Name() string { return "analysis" }

// FetchCandles returns the price history for symbol, sorted by time ascending
// with duplicate timestamps dropped.
func (f *AnalysisFetcher) FetchCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/chart/history?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), limit)
	var candles []model.Candle
	if err := f.getJSON(ctx, endpoint, &candles); err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return dedupCandles(candles), nil
}

// FetchMarkers returns the detected-pattern markers for symbol. The marker
// list is unordered by contract; no sorting happens here.
func (f *AnalysisFetcher) FetchMarkers(ctx context.Context, symbol, pattern string) ([]model.Marker, error) {
	endpoint := fmt.Sprintf("%s/api/chart/markers?symbol=%s&pattern=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(pattern))
	var markers []model.Marker
	if err := f.getJSON(ctx, endpoint, &markers); err != nil {
		return nil, fmt.Errorf("fetch markers: %w", err)
	}
	return markers, nil
}

func (f *AnalysisFetcher) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func dedupCandles(sorted []model.Candle) []model.Candle {
	out := sorted[:0]
	var lastTime int64
	for i, c := range sorted {
		if i > 0 && c.Time == lastTime {
			continue
		}
		out = append(out, c)
		lastTime = c.Time
	}
	return out
}
