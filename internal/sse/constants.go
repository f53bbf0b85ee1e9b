package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel.
	// A round of a full grid emits a few dozen events.
	ClientEventBuffer = 128
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Websocket connection settings
const (
	// WSPongWait is how long to wait for a pong before dropping the client
	WSPongWait = 60 * time.Second

	// WSPingPeriod must be shorter than WSPongWait
	WSPingPeriod = (WSPongWait * 9) / 10

	// WSReadLimit bounds inbound client messages; clients only send control frames
	WSReadLimit = 512

	WSReadBufferSize  = 1024
	WSWriteBufferSize = 4096
)

// Stream control event types
const (
	// EventTypeConnected is the first event a client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Broadcast buffer full, stream event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "Websocket upgrade failed"
	LogMsgSubscriberReady    = "Stream subscriber registered for event types"
	LogMsgUnexpectedPayload  = "Unexpected event payload, forwarding as is"
)

// Error messages
const (
	ErrMsgStreamingNotSupported = "streaming not supported"
)

// Log field keys
const (
	LogFieldClientID     = "client_id"
	LogFieldFilters      = "filters"
	LogFieldTotalClients = "total_clients"
	LogFieldTransport    = "transport"
	LogFieldEventType    = "event_type"
	LogFieldTypes        = "types"
	LogFieldError        = "error"
)

// Transports
const (
	TransportSSE       = "sse"
	TransportWebsocket = "websocket"
)
