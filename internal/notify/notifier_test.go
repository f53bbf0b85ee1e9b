package notify

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
)

// MockWebhookExecutor
type MockWebhookExecutor struct {
	mock.Mock
}

func (m *MockWebhookExecutor) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(webhookID, token, wait, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func captureEmbed(exec *MockWebhookExecutor, err error) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{}
	exec.On("WebhookExecute", "hook", "secret", false, mock.Anything).
		Run(func(args mock.Arguments) {
			*embed = *args.Get(3).(*discordgo.WebhookParams).Embeds[0]
		}).
		Return(nil, err)
	return embed
}

func TestNotifier_WaveCompleted(t *testing.T) {
	exec := new(MockWebhookExecutor)
	embed := captureEmbed(exec, nil)
	bus := event.NewMemoryBus()
	NewNotifier(exec, "hook", "secret").Subscribe(context.Background(), bus)

	rewards := []domain.Item{{ID: "i1", Type: domain.ItemTypeSword, Rarity: domain.RarityRare, Power: 3}}
	err := bus.Publish(context.Background(),
		event.NewWaveCompletedEvent("d1", domain.WaveCompleted{Wave: 2, Receiver: "alice", Rewards: rewards}))

	require.NoError(t, err)
	assert.Equal(t, "Wave 2 cleared", embed.Title)
	assert.Equal(t, ColorVictory, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "alice", embed.Fields[0].Value)
	assert.Equal(t, "Sword (Rare, power 3)", embed.Fields[1].Value)
	exec.AssertExpectations(t)
}

func TestNotifier_DungeonEnded(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.DungeonStatus
		wantTitle string
		wantColor int
	}{
		{"left", domain.DungeonCompleted, "Donjon: the party returns", ColorLeft},
		{"fallen", domain.DungeonFailed, "Donjon: the party has fallen", ColorDefeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := new(MockWebhookExecutor)
			embed := captureEmbed(exec, nil)
			bus := event.NewMemoryBus()
			NewNotifier(exec, "hook", "secret").Subscribe(context.Background(), bus)

			err := bus.Publish(context.Background(), event.NewDungeonEndedEvent(domain.DungeonEndedPayload{
				DungeonID: "d1",
				Party:     []string{"alice", "bob"},
				Status:    tt.status,
				WavesWon:  3,
				TotalLoot: 4,
			}))

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, embed.Title)
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "alice, bob", embed.Fields[0].Value)
			assert.Equal(t, "3", embed.Fields[1].Value)
		})
	}
}

func TestNotifier_SendFailureReachesPublisher(t *testing.T) {
	exec := new(MockWebhookExecutor)
	captureEmbed(exec, assert.AnError)
	bus := event.NewMemoryBus()
	NewNotifier(exec, "hook", "secret").Subscribe(context.Background(), bus)

	err := bus.Publish(context.Background(), event.NewDefeatEvent("d1", 1))
	assert.NoError(t, err, "defeat is not posted")

	err = bus.Publish(context.Background(), event.NewDungeonEndedEvent(domain.DungeonEndedPayload{DungeonID: "d1"}))
	assert.Error(t, err)
}

func TestFormatRewards_Empty(t *testing.T) {
	assert.Equal(t, NoRewards, formatRewards(nil))
}

func TestNewWebhookNotifier_Unconfigured(t *testing.T) {
	n, err := NewWebhookNotifier("", "")
	assert.NoError(t, err)
	assert.Nil(t, n)
}
