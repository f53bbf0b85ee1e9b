package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameAccountsRegistered = "accounts_registered_total"
	MetricNameItemsEquipped      = "items_equipped_total"
	MetricNameItemsForged        = "items_forged_total"
	MetricNameDungeonsStarted    = "dungeons_started_total"
	MetricNameDungeonsEnded      = "dungeons_ended_total"
	MetricNameDungeonActive      = "dungeon_active"
	MetricNameWavesResolved      = "dungeon_waves_resolved_total"
	MetricNameCombatRounds       = "combat_rounds_total"
	MetricNameCombatAttacks      = "combat_attacks_total"
	MetricNameDamageDealt        = "combat_damage_dealt_total"
	MetricNameLootDropped        = "loot_dropped_total"
	MetricNameRoundDuration      = "combat_round_duration_seconds"
	MetricNameVillageCommands    = "village_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextAccountsRegistered = "Total number of accounts registered"
	HelpTextItemsEquipped      = "Total number of equip and unequip actions"
	HelpTextItemsForged        = "Total number of forge upgrades"
	HelpTextDungeonsStarted    = "Total number of dungeon runs started"
	HelpTextDungeonsEnded      = "Total number of dungeon runs ended, by final status"
	HelpTextDungeonActive      = "Whether a dungeon run is currently in progress"
	HelpTextWavesResolved      = "Total number of dungeon waves resolved, by outcome"
	HelpTextCombatRounds       = "Total number of combat rounds played"
	HelpTextCombatAttacks      = "Total number of attacks resolved"
	HelpTextDamageDealt        = "Total damage dealt in combat"
	HelpTextLootDropped        = "Total number of items dropped, by rarity"
	HelpTextRoundDuration      = "Time spent resolving one combat round in seconds"
	HelpTextVillageCommands    = "Total number of village commands dispatched, by command and outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSlot    = "slot"
	LabelRarity  = "rarity"
	LabelOutcome = "outcome"
	LabelCommand = "command"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RoundLatencyBuckets covers in-memory round resolution, 10µs to 100ms
var RoundLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Event payload could not be decoded"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
