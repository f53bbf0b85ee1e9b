package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketHandler streams the same events as Handler as JSON text frames
//
// @Summary Presentation event stream (websocket)
// @Description Same events as /stream, one JSON object per text frame
// @Tags stream
// @Param types query string false "Comma separated event types"
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [get]
func WebsocketHandler(hub *Hub) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  WSReadBufferSize,
		WriteBufferSize: WSWriteBufferSize,
		// presentation clients are served from other origins
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		eventTypes := parseTypes(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, LogFieldError, err)
			return
		}
		defer conn.Close()

		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected,
			LogFieldClientID, client.ID,
			LogFieldTransport, TransportWebsocket,
			LogFieldFilters, eventTypes,
			LogFieldTotalClients, hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				LogFieldClientID, client.ID,
				LogFieldTotalClients, hub.ClientCount())
		}()

		closed := make(chan struct{})
		go readPump(conn, closed)

		if !writeWS(conn, connectedEvent(client.ID, eventTypes, TransportWebsocket)) {
			return
		}

		ticker := time.NewTicker(WSPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
						time.Now().Add(WriteTimeout))
					return
				}
				if !writeWS(conn, event) {
					return
				}

			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
					return
				}
			}
		}
	}
}

// readPump drains control frames so pongs and close frames are handled,
// closing done when the peer goes away
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(WSReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(WSPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(WSPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeWS(conn *websocket.Conn, event Event) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := conn.WriteJSON(event); err != nil {
		slog.Warn(LogMsgWriteError, LogFieldEventType, event.Type, LogFieldError, err)
		return false
	}
	return true
}
