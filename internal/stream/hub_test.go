package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartd/internal/model"
	"chartd/internal/surface"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) surface.Event {
	t.Helper()
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var event surface.Event
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestHub_SnapshotThenEvents(t *testing.T) {
	mem := surface.NewMemory()
	series := mem.CreateLineSeries(surface.LineStyle{Color: "#abc", Width: 2, Title: "pattern:1"})
	series.SetData([]model.Point{{Time: 1, Value: 10}})

	hub := NewHub(mem.Snapshot, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	conn := dial(t, srv.URL)

	snap := readEvent(t, conn)
	require.Equal(t, surface.EventSnapshot, snap.Type)
	require.NotNil(t, snap.State)
	require.Len(t, snap.State.Series, 1)
	assert.Equal(t, "pattern:1", snap.State.Series[0].Style.Title)

	hub.Publish(surface.Event{Type: surface.EventMarkers, Markers: []model.PointMarker{{Time: 5}}})
	event := readEvent(t, conn)
	assert.Equal(t, surface.EventMarkers, event.Type)
	require.Len(t, event.Markers, 1)
	assert.Equal(t, int64(5), event.Markers[0].Time)
}

func TestHub_ClientCount(t *testing.T) {
	mem := surface.NewMemory()
	hub := NewHub(mem.Snapshot, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	require.Equal(t, 0, hub.ClientCount())
	conn := dial(t, srv.URL)
	readEvent(t, conn)
	assert.Equal(t, 1, hub.ClientCount())

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}
