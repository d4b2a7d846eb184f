package http

import (
	"io"
	"net/http"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"

	"github.com/terrascape/terrascape/scape"
)

// ProgressBroadcaster fans refinement progress out to websocket clients. The
// zero value is not usable, call NewProgressBroadcaster.
type ProgressBroadcaster struct {
	mutex sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewProgressBroadcaster() *ProgressBroadcaster {
	return &ProgressBroadcaster{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the websocket endpoint. Connections are registered and then
// held open until the client disconnects; anything the client sends is
// discarded.
func (b *ProgressBroadcaster) Handler() http.Handler {
	return websocket.Server{
		Handler: func(conn *websocket.Conn) {
			b.mutex.Lock()
			b.conns[conn] = struct{}{}
			b.mutex.Unlock()

			defer func() {
				b.mutex.Lock()
				delete(b.conns, conn)
				b.mutex.Unlock()
			}()

			io.Copy(io.Discard, conn)
		},
	}
}

// Publish sends p to every connected client. Clients that fail to receive are
// dropped.
func (b *ProgressBroadcaster) Publish(p scape.Progress) {
	payload, err := json.Marshal(p)
	if err != nil {
		logs.Error(errors.New("encoding progress failed").Wrap(err))
		return
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	for conn := range b.conns {
		if err := websocket.Message.Send(conn, payload); err != nil {
			logs.WithTag("remote_addr", conn.Request().RemoteAddr).
				Warn(errors.New("sending progress failed").Wrap(err))
			conn.Close()
			delete(b.conns, conn)
		}
	}
}

// ClientCount returns the number of connected progress listeners.
func (b *ProgressBroadcaster) ClientCount() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.conns)
}
