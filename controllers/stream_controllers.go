package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/task-manager-app/realtime"
	"github.com/yeremiapane/task-manager-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is already restricted by the CORS middleware.
		return true
	},
}

type StreamController struct {
	Hub *realtime.Hub
}

func NewStreamController(hub *realtime.Hub) *StreamController {
	return &StreamController{Hub: hub}
}

// Stream upgrades the connection and keeps it registered until the client
// goes away. The server only pushes; inbound frames are drained and
// ignored.
func (sc *StreamController) Stream(c *gin.Context) {
	userID := c.GetUint("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	sc.Hub.Register(conn, userID)
	utils.InfoLogger.Printf("Notification stream opened for user %d", userID)

	go func() {
		defer sc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
