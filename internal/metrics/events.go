package metrics

import (
	"context"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.StreamTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.AccountRegistered:
		AccountsRegistered.Inc()

	case event.ItemEquipped:
		var p event.AccountPayloadV1
		if p, err = event.DecodePayload[event.AccountPayloadV1](evt.Payload); err == nil {
			ItemsEquipped.WithLabelValues(string(p.Slot)).Inc()
		}

	case event.ItemForged:
		var p domain.ItemForgedPayload
		if p, err = event.DecodePayload[domain.ItemForgedPayload](evt.Payload); err == nil {
			ItemsForged.WithLabelValues(string(p.Item.Rarity)).Inc()
		}

	case event.CombatRound:
		CombatRounds.Inc()

	case event.CombatAttack:
		var p domain.CombatEventPayload
		if p, err = event.DecodePayload[domain.CombatEventPayload](evt.Payload); err == nil {
			CombatAttacks.Inc()
			DamageDealt.Add(float64(p.Event.Damage))
		}

	case event.WaveCompleted:
		var p domain.TerminalPayload
		if p, err = event.DecodePayload[domain.TerminalPayload](evt.Payload); err == nil {
			WavesResolved.WithLabelValues(string(domain.CombatVictory)).Inc()
			for _, it := range p.Rewards {
				LootDropped.WithLabelValues(string(it.Rarity)).Inc()
			}
		}

	case event.DungeonDefeat:
		WavesResolved.WithLabelValues(string(domain.CombatDefeat)).Inc()

	case event.DungeonEnded:
		var p domain.DungeonEndedPayload
		if p, err = event.DecodePayload[domain.DungeonEndedPayload](evt.Payload); err == nil {
			DungeonsEnded.WithLabelValues(string(p.Status)).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
