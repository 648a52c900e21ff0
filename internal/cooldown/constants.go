package cooldown

import "time"

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// DefaultJobChangeCooldown gates joining and leaving jobs
	DefaultJobChangeCooldown = time.Hour

	// DefaultWeeklySalaryCooldown gates weekly salary claims
	DefaultWeeklySalaryCooldown = 7 * 24 * time.Hour

	// DefaultMonthlySalaryCooldown gates monthly salary claims
	DefaultMonthlySalaryCooldown = 30 * 24 * time.Hour

	// DefaultMiningCooldown applies to tiers with no configured duration
	DefaultMiningCooldown = 5 * time.Minute
)

// =============================================================================
// Action Names
// =============================================================================

const (
	ActionMine          = "mine"
	ActionWork          = "work"
	ActionJobChange     = "job_change"
	ActionWeeklySalary  = "weekly_salary"
	ActionMonthlySalary = "monthly_salary"
)

// ErrFmtOnCooldown formats ErrOnCooldown.Error()
const ErrFmtOnCooldown = "%s on cooldown for %s"
