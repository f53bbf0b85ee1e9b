package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Game event types
const (
	AccountRegistered Type = domain.EventTypeAccountRegistered
	ItemEquipped      Type = domain.EventTypeItemEquipped
	ItemForged        Type = domain.EventTypeItemForged
	WaveStarted       Type = domain.EventTypeWaveStarted
	CombatRound       Type = domain.EventTypeCombatRound
	CombatMove        Type = domain.EventTypeCombatMove
	CombatAttack      Type = domain.EventTypeCombatAttack
	CombatSnapshot    Type = domain.EventTypeCombatSnapshot
	WaveCompleted     Type = domain.EventTypeWaveCompleted
	DungeonDefeat     Type = domain.EventTypeDungeonDefeat
	DungeonEnded      Type = domain.EventTypeDungeonEnded
)

// StreamTypes lists every event type forwarded to presentation clients
var StreamTypes = []Type{
	AccountRegistered,
	ItemEquipped,
	ItemForged,
	WaveStarted,
	CombatRound,
	CombatMove,
	CombatAttack,
	CombatSnapshot,
	WaveCompleted,
	DungeonDefeat,
	DungeonEnded,
}

// combatEventTypes maps combat event kinds to bus types. Victory and defeat
// are published as wave outcomes instead.
var combatEventTypes = map[domain.CombatEventKind]Type{
	domain.CombatEventRound:  CombatRound,
	domain.CombatEventMove:   CombatMove,
	domain.CombatEventAttack: CombatAttack,
}

// AccountPayloadV1 is the typed payload for account and equipment events
type AccountPayloadV1 struct {
	Pseudonym string          `json:"pseudonym"`
	Color     string          `json:"color,omitempty"`
	Item      *domain.Item    `json:"item,omitempty"`
	Slot      domain.ItemType `json:"slot,omitempty"`
	Equipped  bool            `json:"equipped"`
	Timestamp int64           `json:"timestamp"`
}

func dungeonMetadata(dungeonID string, wave int) map[string]interface{} {
	return map[string]interface{}{
		MetadataKeyDungeonID: dungeonID,
		MetadataKeyWave:      wave,
	}
}

// Type-safe event constructors

// NewAccountRegisteredEvent creates an event for a newly registered account
func NewAccountRegisteredEvent(pseudonym, color string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AccountRegistered,
		Payload: AccountPayloadV1{
			Pseudonym: pseudonym,
			Color:     color,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemEquippedEvent creates an event for an equip or unequip
func NewItemEquippedEvent(pseudonym string, slot domain.ItemType, item *domain.Item, equipped bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemEquipped,
		Payload: AccountPayloadV1{
			Pseudonym: pseudonym,
			Item:      item,
			Slot:      slot,
			Equipped:  equipped,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemForgedEvent creates an event for a forge upgrade
func NewItemForgedEvent(pseudonym string, item domain.Item, oldPower int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemForged,
		Payload: domain.ItemForgedPayload{
			Pseudonym: pseudonym,
			Item:      item,
			OldPower:  oldPower,
		},
	}
}

// NewWaveStartedEvent creates an event for a freshly spawned wave
func NewWaveStartedEvent(payload domain.WaveStartedPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     WaveStarted,
		Payload:  payload,
		Metadata: dungeonMetadata(payload.DungeonID, payload.Wave),
	}
}

// NewCombatEvent wraps a round, move or attack. ok is false for kinds that
// are not published individually.
func NewCombatEvent(dungeonID string, wave int, ev domain.CombatEvent) (Event, bool) {
	t, ok := combatEventTypes[ev.Kind]
	if !ok {
		return Event{}, false
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.CombatEventPayload{
			DungeonID: dungeonID,
			Wave:      wave,
			Event:     ev,
		},
		Metadata: dungeonMetadata(dungeonID, wave),
	}, true
}

// NewSnapshotEvent creates an event carrying the grid after a round
func NewSnapshotEvent(dungeonID string, wave int, snap domain.GridSnapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CombatSnapshot,
		Payload: domain.SnapshotPayload{
			DungeonID: dungeonID,
			Wave:      wave,
			Snapshot:  snap,
		},
		Metadata: dungeonMetadata(dungeonID, wave),
	}
}

// NewWaveCompletedEvent creates the terminal event of a won wave
func NewWaveCompletedEvent(dungeonID string, done domain.WaveCompleted) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WaveCompleted,
		Payload: domain.TerminalPayload{
			DungeonID: dungeonID,
			Wave:      done.Wave,
			Kind:      domain.CombatVictory,
			Receiver:  done.Receiver,
			Rewards:   done.Rewards,
		},
		Metadata: dungeonMetadata(dungeonID, done.Wave),
	}
}

// NewDefeatEvent creates the terminal event of a lost wave
func NewDefeatEvent(dungeonID string, wave int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DungeonDefeat,
		Payload: domain.TerminalPayload{
			DungeonID: dungeonID,
			Wave:      wave,
			Kind:      domain.CombatDefeat,
		},
		Metadata: dungeonMetadata(dungeonID, wave),
	}
}

// NewDungeonEndedEvent creates the once-per-run summary event
func NewDungeonEndedEvent(payload domain.DungeonEndedPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     DungeonEnded,
		Payload:  payload,
		Metadata: dungeonMetadata(payload.DungeonID, payload.WavesWon),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order, so a publisher observes them complete before it
// moves on.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
