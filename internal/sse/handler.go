package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler returns an HTTP handler for SSE connections
//
// @Summary Presentation event stream (SSE)
// @Description Streams dungeon and account events. Use types=a,b to filter.
// @Tags stream
// @Produce text/event-stream
// @Param types query string false "Comma separated event types"
// @Success 200 {object} Event
// @Router /stream [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingNotSupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		eventTypes := parseTypes(r)
		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected,
			LogFieldClientID, client.ID,
			LogFieldTransport, TransportSSE,
			LogFieldFilters, eventTypes,
			LogFieldTotalClients, hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				LogFieldClientID, client.ID,
				LogFieldTotalClients, hub.ClientCount())
		}()

		if !writeSSE(w, flusher, connectedEvent(client.ID, eventTypes, TransportSSE)) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}
				if !writeSSE(w, flusher, event) {
					return
				}

			case <-ticker.C:
				keepalive := Event{Type: EventTypeKeepalive, Timestamp: time.Now().UnixMilli()}
				if !writeSSE(w, flusher, keepalive) {
					return
				}
			}
		}
	}
}

// writeSSE reports false when the client is gone
func writeSSE(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		slog.Error(LogMsgWriteError, LogFieldEventType, event.Type, LogFieldError, err)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		slog.Warn(LogMsgWriteError, LogFieldEventType, event.Type, LogFieldError, err)
		return false
	}
	flusher.Flush()
	return true
}

func parseTypes(r *http.Request) []string {
	param := r.URL.Query().Get(QueryParamTypes)
	if param == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(param, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func connectedEvent(clientID string, filters []string, transport string) Event {
	return Event{
		ID:        clientID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().UnixMilli(),
		Payload: ConnectedPayload{
			ClientID:  clientID,
			Filters:   filters,
			Transport: transport,
		},
	}
}
