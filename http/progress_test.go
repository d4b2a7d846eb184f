package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/terrascape/terrascape/scape"
)

func TestProgressBroadcaster(t *testing.T) {
	broadcaster := NewProgressBroadcaster()
	server := httptest.NewServer(NewAdminMux("test", func() bool { return true }, broadcaster))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/progress"
	conn, err := websocket.Dial(url, "", server.URL)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return broadcaster.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	sent := scape.Progress{
		Vertices:   42,
		Triangles:  80,
		Candidates: 7,
		LastError:  1.5,
	}
	broadcaster.Publish(sent)

	var payload []byte
	require.NoError(t, websocket.Message.Receive(conn, &payload))

	var got scape.Progress
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Equal(t, sent, got)
}

func TestHandleReadyCheck(t *testing.T) {
	ready := false
	handler := HandleReadyCheck(func() bool { return ready })

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/ready", nil))
	require.Equal(t, 503, w.Code)

	ready = true
	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/ready", nil))
	require.Equal(t, 200, w.Code)
}
