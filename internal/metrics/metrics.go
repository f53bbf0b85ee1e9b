package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Account Metrics
var (
	AccountsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountsRegistered,
			Help: HelpTextAccountsRegistered,
		},
	)

	ItemsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsEquipped,
			Help: HelpTextItemsEquipped,
		},
		[]string{LabelSlot},
	)

	ItemsForged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsForged,
			Help: HelpTextItemsForged,
		},
		[]string{LabelRarity},
	)
)

// Dungeon Metrics
var (
	DungeonsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDungeonsStarted,
			Help: HelpTextDungeonsStarted,
		},
	)

	DungeonsEnded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDungeonsEnded,
			Help: HelpTextDungeonsEnded,
		},
		[]string{LabelStatus},
	)

	DungeonActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDungeonActive,
			Help: HelpTextDungeonActive,
		},
	)

	WavesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWavesResolved,
			Help: HelpTextWavesResolved,
		},
		[]string{LabelOutcome},
	)

	LootDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootDropped,
			Help: HelpTextLootDropped,
		},
		[]string{LabelRarity},
	)
)

// Combat Metrics
var (
	CombatRounds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCombatRounds,
			Help: HelpTextCombatRounds,
		},
	)

	CombatAttacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCombatAttacks,
			Help: HelpTextCombatAttacks,
		},
	)

	DamageDealt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDamageDealt,
			Help: HelpTextDamageDealt,
		},
	)

	RoundDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRoundDuration,
			Help:    HelpTextRoundDuration,
			Buckets: RoundLatencyBuckets,
		},
	)
)

// Village Metrics
var (
	VillageCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVillageCommands,
			Help: HelpTextVillageCommands,
		},
		[]string{LabelCommand, LabelOutcome},
	)
)
