package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
)

// Subscriber bridges the internal event bus to the stream hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new stream subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarder for every presentation event type
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.StreamTypes))
	for _, t := range event.StreamTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscriberReady, LogFieldTypes, types)
}

// forward flattens a bus event into a stream event. Combat events carry the
// bare combat event as payload, the run and wave moving to the envelope.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	out := Event{Type: string(evt.Type)}

	switch p := evt.Payload.(type) {
	case domain.CombatEventPayload:
		out.DungeonID, out.Wave, out.Payload = p.DungeonID, p.Wave, p.Event
	case domain.SnapshotPayload:
		out.DungeonID, out.Wave, out.Payload = p.DungeonID, p.Wave, p.Snapshot
	case domain.TerminalPayload:
		out.DungeonID, out.Wave, out.Payload = p.DungeonID, p.Wave, p
	case domain.WaveStartedPayload:
		out.DungeonID, out.Wave, out.Payload = p.DungeonID, p.Wave, p
	case domain.DungeonEndedPayload:
		out.DungeonID, out.Payload = p.DungeonID, p
	case event.AccountPayloadV1, domain.ItemForgedPayload:
		out.Payload = p
	default:
		slog.Debug(LogMsgUnexpectedPayload, LogFieldEventType, evt.Type)
		out.Payload = evt.Payload
	}

	s.hub.Publish(out)
	slog.Debug(LogMsgEventBroadcast, LogFieldEventType, out.Type)
	return nil
}
