package mission

// Error format strings
const (
	ErrFmtSchedule     = "invalid %s mission schedule %q: %w"
	ErrFmtNotFound     = "%w: %s"
	ErrFmtClaimed      = "%w: %s"
	ErrFmtNotCompleted = "%w: %s is at %d/%d"
	ErrFmtReward       = "mission %s reward: %w"
	ErrFmtAmount       = "%w: progress amount %d"
)

// Log message constants
const (
	LogMsgGenerated       = "Missions generated"
	LogMsgRegenBlocked    = "Mission regeneration blocked by unclaimed completions"
	LogMsgMissionComplete = "Mission completed"
	LogMsgMissionClaimed  = "Mission reward claimed"
)
