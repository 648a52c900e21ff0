package job

// Salary periods
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Error format strings
const (
	ErrFmtUnknownJob   = "%w: %s"
	ErrFmtAlreadyInJob = "%w: %s"
	ErrFmtNotInJob     = "%w: %s"
	ErrFmtNoSuchSalary = "%w: %s has no %s salary"
	ErrFmtPenalty      = "work penalty: %w"
	ErrFmtPayout       = "work payout: %w"
	ErrFmtSalary       = "%s salary: %w"
)

// Log message constants
const (
	LogMsgJobJoined     = "Job joined"
	LogMsgJobLeft       = "Job left"
	LogMsgJobActivated  = "Job activated"
	LogMsgWorkFailed    = "Work failed, penalty applied"
	LogMsgWorkPaid      = "Work paid"
	LogMsgTaxEvaded     = "Tax evaded"
	LogMsgJobLevelUp    = "Job level up"
	LogMsgSalaryClaimed = "Salary claimed"
)
