package sse

// Event is one message on the presentation stream. Dungeon events carry the
// run and wave they belong to; the payload is the event body itself.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	DungeonID string      `json:"dungeon_id,omitempty"`
	Wave      int         `json:"wave,omitempty"`
	Payload   interface{} `json:"payload"`
}

// ConnectedPayload is sent once when a client attaches
type ConnectedPayload struct {
	ClientID  string   `json:"client_id"`
	Filters   []string `json:"filters"`
	Transport string   `json:"transport"`
}
