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

// Progression metric names
const (
	MetricNameMaterialsMined   = "materials_mined_total"
	MetricNameCraftAttempts    = "craft_attempts_total"
	MetricNameShiftsWorked     = "shifts_worked_total"
	MetricNameCoinsPaid        = "coins_paid_total"
	MetricNameTaxCollected     = "tax_collected_total"
	MetricNameLootboxesOpened  = "lootboxes_opened_total"
	MetricNamePityTriggers     = "lootbox_pity_triggers_total"
	MetricNameMissionsClaimed  = "missions_claimed_total"
	MetricNameLevelUps         = "level_ups_total"
	MetricNameToolsBroken      = "tools_broken_total"
	MetricNameProfileConflicts = "profile_version_conflicts_total"
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

// Progression metric help text
const (
	HelpTextMaterialsMined   = "Total quantity of materials mined"
	HelpTextCraftAttempts    = "Total number of craft attempts by outcome"
	HelpTextShiftsWorked     = "Total number of work shifts by outcome"
	HelpTextCoinsPaid        = "Total coins paid out by source"
	HelpTextTaxCollected     = "Total coins withheld as income tax"
	HelpTextLootboxesOpened  = "Total number of lootboxes opened"
	HelpTextPityTriggers     = "Total number of lootbox openings that hit the pity threshold"
	HelpTextMissionsClaimed  = "Total number of missions claimed"
	HelpTextLevelUps         = "Total number of global level ups"
	HelpTextToolsBroken      = "Total number of tools that reached zero durability"
	HelpTextProfileConflicts = "Total number of optimistic save conflicts on player profiles"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelMaterial  = "material"
	LabelBlueprint = "blueprint"
	LabelOutcome   = "outcome"
	LabelJob       = "job"
	LabelSource    = "source"
	LabelBox       = "box"
	LabelScope     = "scope"
	LabelTool      = "tool"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Coin payout sources
const (
	SourceWork   = "work"
	SourceSalary = "salary"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
