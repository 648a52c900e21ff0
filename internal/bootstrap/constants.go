package bootstrap

import "time"

// DirPermission is the standard permission for creating directories
const DirPermission = 0755

// Worker pool sizing for background maintenance jobs
const (
	MaintenanceWorkers   = 1
	MaintenanceQueueSize = 4
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized = "Logging initialized"
	LogMsgStartingService    = "Starting progression service"
	LogMsgConfigWarning      = "Configuration warning"
)

// Event system defaults applied when the configuration leaves them empty
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "data/deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Catalog and store messages
const (
	LogMsgCatalogLoaded      = "Catalog loaded"
	LogMsgStoreOpened        = "Profile store opened"
	ErrMsgFailedLoadCatalog  = "failed to load catalog"
	ErrMsgFailedCreateCodec  = "failed to create profile codec"
	ErrMsgFailedConnect      = "failed to connect to postgres"
	ErrMsgFailedMigrate      = "failed to migrate postgres"
	ErrMsgFailedOpenSQLite   = "failed to open sqlite store"
	ErrMsgFailedCreateDir    = "failed to create data directory"
	ErrMsgFailedBuildEngines = "failed to build engines"
	ErrFmtUnknownDriver      = "unknown store driver %q"
	CatalogSourceEmbedded    = "embedded"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgTracingShutdownFailed      = "Tracing shutdown failed"
	LogMsgStoreCloseFailed           = "Profile store close failed"
)
