package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
)

func TestEventMetricsCollector_RecordsGameEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	rounds := testutil.ToFloat64(CombatRounds)
	damage := testutil.ToFloat64(DamageDealt)
	epic := testutil.ToFloat64(LootDropped.WithLabelValues(string(domain.RarityEpic)))
	completed := testutil.ToFloat64(DungeonsEnded.WithLabelValues(string(domain.DungeonCompleted)))

	round, _ := event.NewCombatEvent("d1", 1, domain.CombatEvent{Kind: domain.CombatEventRound, Round: 1})
	attack, _ := event.NewCombatEvent("d1", 1, domain.CombatEvent{Kind: domain.CombatEventAttack, Round: 1, Damage: 7})
	require.NoError(t, bus.Publish(ctx, round))
	require.NoError(t, bus.Publish(ctx, attack))
	require.NoError(t, bus.Publish(ctx, event.NewWaveCompletedEvent("d1", domain.WaveCompleted{
		Wave:    1,
		Rewards: []domain.Item{{Rarity: domain.RarityEpic}, {Rarity: domain.RarityEpic}},
	})))
	require.NoError(t, bus.Publish(ctx, event.NewDungeonEndedEvent(domain.DungeonEndedPayload{DungeonID: "d1", Status: domain.DungeonCompleted})))

	assert.Equal(t, rounds+1, testutil.ToFloat64(CombatRounds))
	assert.Equal(t, damage+7, testutil.ToFloat64(DamageDealt))
	assert.Equal(t, epic+2, testutil.ToFloat64(LootDropped.WithLabelValues(string(domain.RarityEpic))))
	assert.Equal(t, completed+1, testutil.ToFloat64(DungeonsEnded.WithLabelValues(string(domain.DungeonCompleted))))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CombatAttack)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: event.CombatAttack, Payload: "not a payload"})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CombatAttack))))
}
