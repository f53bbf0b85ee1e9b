package notify

// Embed colors
const (
	ColorVictory = 0x57F287 // Green
	ColorDefeat  = 0xED4245 // Red
	ColorLeft    = 0xFFD700 // Gold
)

// Embed text
const (
	FooterText         = "KubeRPG Dungeon"
	TitleWaveCleared   = "Wave %d cleared"
	TitleDungeonEnded  = "%s: the party returns"
	TitleDungeonFailed = "%s: the party has fallen"
	FieldParty         = "Party"
	FieldWaves         = "Waves cleared"
	FieldLoot          = "Loot"
	FieldReceiver      = "Receiver"
	FieldRewards       = "Rewards"
	NoRewards          = "nothing this time"
	DungeonDisplayName = "donjon"
	RewardLineFormat   = "%s (%s, power %d)"
)

// Log messages
const (
	LogMsgNotifierDisabled   = "Discord webhook not configured, notifications disabled"
	LogMsgNotifierReady      = "Discord notifier subscribed"
	LogMsgNotificationSent   = "Discord notification sent"
	LogMsgNotificationFailed = "Failed to send Discord notification"
	LogMsgParseError         = "Failed to decode event payload"
)

// Log field keys
const (
	LogFieldEventType = "event_type"
	LogFieldDungeonID = "dungeon_id"
	LogFieldError     = "error"
)
