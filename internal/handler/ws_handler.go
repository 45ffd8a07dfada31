package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is handled by the CORS middleware on the HTTP side; the
	// handshake itself is gated by token auth before any data is sent.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PushChannel upgrades the connection and hands it to the broadcast hub. The
// auth middleware runs before this handler, so an unauthenticated client is
// rejected before the first snapshot.
func PushChannel(c echo.Context) error {
	log := logger.FromEcho(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error("Websocket upgrade failed", zap.Error(err))
		return err
	}

	stateHub.Serve(conn)
	return nil
}
