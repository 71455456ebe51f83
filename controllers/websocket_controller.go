package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/websocket"
)

var (
	wsHub     *websocket.Hub
	wsSources websocket.Sources
	wsGuard   websocket.Guard
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func SetWebSocket(hub *websocket.Hub, sources websocket.Sources, guard websocket.Guard) {
	wsHub = hub
	wsSources = sources
	wsGuard = guard
}

// ServeWs upgrades the connection and starts the client's pumps. All
// live list subscriptions run over this socket.
func ServeWs(c *gin.Context) {
	uid := senderFrom(c).UID
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(wsHub, conn, uid, wsSources, wsGuard)
	wsHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
