package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartd.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	require.NoError(t, rec.RecordRender(&RenderCycle{
		Symbol:           "NIFTY",
		Pattern:          "bowl",
		Candles:          300,
		Markers:          12,
		PatternInstances: 2,
		RangeSegments:    1,
		PointMarkers:     9,
		Duration:         3 * time.Millisecond,
	}))

	var count int
	var symbol string
	row := rec.db.QueryRow(`SELECT COUNT(*), MAX(symbol) FROM render_cycles`)
	require.NoError(t, row.Scan(&count, &symbol))
	assert.Equal(t, 1, count)
	assert.Equal(t, "NIFTY", symbol)
}
