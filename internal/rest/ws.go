package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/nansabi/BLOG-WEBSITE/domain"
	"github.com/nansabi/BLOG-WEBSITE/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the token already authenticates the caller
		return true
	},
}

type wsHandler struct {
	Presence domain.PresenceRegistry
}

func NewWSHandler(presence domain.PresenceRegistry) *wsHandler {
	return &wsHandler{
		Presence: presence,
	}
}

// Serve upgrades the request and registers the caller's connection.
// A user holds at most one connection; a newer one replaces the older.
func (h *wsHandler) Serve(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(int64)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Errorf("websocket upgrade failed for user %d: %v", uid, err)
		return
	}

	conn := realtime.NewWSConnection(ws)
	h.Presence.Register(uid, conn)

	// inbound frames are discarded; the read loop only detects disconnects
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.Presence.Deregister(conn)
	_ = conn.Close()
}
