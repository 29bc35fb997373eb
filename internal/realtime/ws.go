package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nansabi/BLOG-WEBSITE/domain"
)

const writeWait = 10 * time.Second

// wsConnection adapts a gorilla websocket to domain.Connection. gorilla
// allows only one concurrent writer, so Send serializes under a mutex.
type wsConnection struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

var _ domain.Connection = (*wsConnection)(nil)

func NewWSConnection(conn *websocket.Conn) *wsConnection {
	return &wsConnection{
		id:   uuid.NewString(),
		conn: conn,
	}
}

func (w *wsConnection) ID() string {
	return w.id
}

func (w *wsConnection) Send(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsConnection) Close() error {
	return w.conn.Close()
}
