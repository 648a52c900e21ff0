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

// Progression Metrics
var (
	MaterialsMined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaterialsMined,
			Help: HelpTextMaterialsMined,
		},
		[]string{LabelMaterial},
	)

	CraftAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftAttempts,
			Help: HelpTextCraftAttempts,
		},
		[]string{LabelBlueprint, LabelOutcome},
	)

	ShiftsWorked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShiftsWorked,
			Help: HelpTextShiftsWorked,
		},
		[]string{LabelJob, LabelOutcome},
	)

	CoinsPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsPaid,
			Help: HelpTextCoinsPaid,
		},
		[]string{LabelSource},
	)

	TaxCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTaxCollected,
			Help: HelpTextTaxCollected,
		},
	)

	LootboxesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootboxesOpened,
			Help: HelpTextLootboxesOpened,
		},
		[]string{LabelBox, LabelSource},
	)

	PityTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggers,
			Help: HelpTextPityTriggers,
		},
		[]string{LabelBox},
	)

	MissionsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionsClaimed,
			Help: HelpTextMissionsClaimed,
		},
		[]string{LabelScope},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ToolsBroken = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameToolsBroken,
			Help: HelpTextToolsBroken,
		},
		[]string{LabelTool},
	)

	ProfileConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProfileConflicts,
			Help: HelpTextProfileConflicts,
		},
	)
)
