package player

// Span names
const (
	SpanGetProfile     = "player.GetProfile"
	SpanMine           = "player.Mine"
	SpanSetZone        = "player.SetZone"
	SpanCraft          = "player.Craft"
	SpanEquipTool      = "player.EquipTool"
	SpanRepairTool     = "player.RepairTool"
	SpanUpgradeTool    = "player.UpgradeTool"
	SpanJoinJob        = "player.JoinJob"
	SpanLeaveJob       = "player.LeaveJob"
	SpanActivateJob    = "player.ActivateJob"
	SpanWork           = "player.Work"
	SpanClaimSalary    = "player.ClaimSalary"
	SpanMissions       = "player.Missions"
	SpanClaimMission   = "player.ClaimMission"
	SpanRecordProgress = "player.RecordProgress"
	SpanOpenLootbox    = "player.OpenLootbox"
)

// Span attribute keys
const (
	AttrGuildID  = "player.guild_id"
	AttrPlayerID = "player.id"
	AttrErrKind  = "error.kind"
)

// Error format strings
const (
	ErrFmtUnknownPeriod = "%w: salary period %q"
)

// Log message constants
const (
	LogMsgActionFailed = "Player action failed"
	LogMsgLevelUp      = "Player leveled up"
)
