package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/event"
	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// WebhookExecutor is the part of a discordgo session the notifier uses
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts dungeon outcomes to a Discord webhook
type Notifier struct {
	exec      WebhookExecutor
	webhookID string
	token     string
}

// NewNotifier creates a notifier that posts through exec
func NewNotifier(exec WebhookExecutor, webhookID, token string) *Notifier {
	return &Notifier{exec: exec, webhookID: webhookID, token: token}
}

// NewWebhookNotifier builds a notifier on an unauthenticated discordgo
// session. Webhooks carry their own token, so no bot login is needed.
// It returns nil when the webhook is not configured.
func NewWebhookNotifier(webhookID, token string) (*Notifier, error) {
	if webhookID == "" || token == "" {
		return nil, nil
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewNotifier(session, webhookID, token), nil
}

// Subscribe registers the notifier for wave and run outcomes. Handler errors
// reach the publisher, so a retrying publisher retries failed posts.
func (n *Notifier) Subscribe(ctx context.Context, bus event.Bus) {
	bus.Subscribe(event.WaveCompleted, n.handleWaveCompleted)
	bus.Subscribe(event.DungeonEnded, n.handleDungeonEnded)
	logger.FromContext(ctx).Info(LogMsgNotifierReady)
}

func (n *Notifier) handleWaveCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.TerminalPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgParseError, LogFieldEventType, evt.Type, LogFieldError, err)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf(TitleWaveCleared, p.Wave),
		Color:  ColorVictory,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldReceiver, Value: p.Receiver, Inline: true},
			{Name: FieldRewards, Value: formatRewards(p.Rewards), Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	return n.send(ctx, evt.Type, p.DungeonID, embed)
}

func (n *Notifier) handleDungeonEnded(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.DungeonEndedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgParseError, LogFieldEventType, evt.Type, LogFieldError, err)
		return nil
	}

	name := title(DungeonDisplayName)
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf(TitleDungeonEnded, name),
		Color:  ColorLeft,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldParty, Value: strings.Join(p.Party, ", "), Inline: false},
			{Name: FieldWaves, Value: fmt.Sprintf("%d", p.WavesWon), Inline: true},
			{Name: FieldLoot, Value: fmt.Sprintf("%d", p.TotalLoot), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	if p.Status == domain.DungeonFailed {
		embed.Title = fmt.Sprintf(TitleDungeonFailed, name)
		embed.Color = ColorDefeat
	}
	return n.send(ctx, evt.Type, p.DungeonID, embed)
}

func (n *Notifier) send(ctx context.Context, typ event.Type, dungeonID string, embed *discordgo.MessageEmbed) error {
	log := logger.FromContext(ctx)
	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}
	if _, err := n.exec.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		log.Error(LogMsgNotificationFailed, LogFieldEventType, typ, LogFieldDungeonID, dungeonID, LogFieldError, err)
		return err
	}
	log.Info(LogMsgNotificationSent, LogFieldEventType, typ, LogFieldDungeonID, dungeonID)
	return nil
}

func formatRewards(items []domain.Item) string {
	if len(items) == 0 {
		return NoRewards
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf(RewardLineFormat, title(string(it.Type)), it.Rarity, it.Power))
	}
	return strings.Join(lines, "\n")
}

// title uses a fresh caser per call since a Caser is not safe for
// concurrent use
func title(s string) string {
	return cases.Title(language.English).String(s)
}
