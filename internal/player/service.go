package player

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/crafting"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/job"
	"github.com/osse101/brandish-progression/internal/ledger"
	"github.com/osse101/brandish-progression/internal/leveling"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/lootbox"
	"github.com/osse101/brandish-progression/internal/mining"
	"github.com/osse101/brandish-progression/internal/mission"
	"github.com/osse101/brandish-progression/internal/profile"
	"github.com/osse101/brandish-progression/internal/reward"
	"github.com/osse101/brandish-progression/internal/tracing"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Service is the one-call-per-trigger entry point used by presentation adapters.
// Every mutating call loads, changes and saves exactly one profile.
type Service interface {
	GetProfile(ctx context.Context, key domain.ProfileKey) (*ProfileView, error)

	Mine(ctx context.Context, key domain.ProfileKey) (*Outcome[*mining.Result], error)
	SetZone(ctx context.Context, key domain.ProfileKey, zoneID string) (*domain.Zone, error)

	Craft(ctx context.Context, key domain.ProfileKey, blueprintID string) (*Outcome[*crafting.Result], error)
	EquipTool(ctx context.Context, key domain.ProfileKey, toolID string) (*domain.Tool, error)
	RepairTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.RepairResult, error)
	UpgradeTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.UpgradeResult, error)

	JoinJob(ctx context.Context, key domain.ProfileKey, jobID string) (*domain.JobRecord, error)
	LeaveJob(ctx context.Context, key domain.ProfileKey, jobID string) error
	ActivateJob(ctx context.Context, key domain.ProfileKey, jobID string) error
	Work(ctx context.Context, key domain.ProfileKey) (*Outcome[*job.WorkResult], error)
	ClaimSalary(ctx context.Context, key domain.ProfileKey, period string) (*job.SalaryResult, error)

	Missions(ctx context.Context, key domain.ProfileKey) (*MissionBoard, error)
	ClaimMission(ctx context.Context, key domain.ProfileKey, missionID string) (*Outcome[*mission.ClaimResult], error)
	RecordProgress(ctx context.Context, key domain.ProfileKey, progressType string, amount int) ([]domain.Mission, error)

	OpenLootbox(ctx context.Context, key domain.ProfileKey, boxID, source string) (*Outcome[*lootbox.Result], error)
}

// Publisher receives settled outcome events
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Outcome wraps an engine result with the profile-level side effects of the same action
type Outcome[T any] struct {
	Result            T                `json:"result"`
	MissionsCompleted []domain.Mission `json:"missions_completed,omitempty"`
	Level             int              `json:"level"`
	LevelsGained      int              `json:"levels_gained,omitempty"`
	Coins             int64            `json:"coins"`
	Tokens            int64            `json:"tokens"`
}

// MissionBoard is the current mission set of a player
type MissionBoard struct {
	Daily         []domain.Mission `json:"daily"`
	Weekly        []domain.Mission `json:"weekly"`
	DailyResetAt  time.Time        `json:"daily_reset_at"`
	WeeklyResetAt time.Time        `json:"weekly_reset_at"`
	Regenerated   []string         `json:"regenerated,omitempty"`
}

// ProfileView is a stored profile plus the progress and capacity figures derived from the catalog
type ProfileView struct {
	*domain.PlayerProfile
	LevelStartXP  int64 `json:"level_start_xp"`
	XPToNext      int64 `json:"xp_to_next"`
	CarriedWeight int   `json:"carried_weight"`
	FreeCapacity  int   `json:"free_capacity"`
}

// Engines groups the domain engines the service drives
type Engines struct {
	Curve    leveling.Curve
	Ledger   *ledger.Ledger
	Mining   *mining.Engine
	Crafting *crafting.Engine
	Jobs     *job.Engine
	Missions *mission.Tracker
	Lootbox  *lootbox.Opener
}

// NewEngines wires every engine against one catalog and random source
func NewEngines(c *catalog.Catalog, rng utils.RandomSource) (Engines, error) {
	l := ledger.New(c)
	applier := reward.NewApplier(c, l, rng)
	tracker, err := mission.NewTracker(c, applier, rng)
	if err != nil {
		return Engines{}, err
	}
	return Engines{
		Curve:    c.Defaults().LevelCurve,
		Ledger:   l,
		Mining:   mining.NewEngine(c, l, reward.NewResolver(rng)),
		Crafting: crafting.NewEngine(c, l, applier, rng),
		Jobs:     job.NewEngine(c, rng),
		Missions: tracker,
		Lootbox:  lootbox.NewOpener(c, reward.NewResolver(rng), applier),
	}, nil
}

type service struct {
	profiles  *profile.Service
	engines   Engines
	publisher Publisher
	tracer    trace.Tracer
}

// NewService creates the player service. publisher may be nil.
func NewService(profiles *profile.Service, engines Engines, publisher Publisher) Service {
	return &service{
		profiles:  profiles,
		engines:   engines,
		publisher: publisher,
		tracer:    tracing.Tracer(),
	}
}

// action is the state a single mutation accumulates for post-commit publishing
type action struct {
	p         *domain.PlayerProfile
	now       time.Time
	events    []event.Event
	completed []domain.Mission
	level     int
}

func (a *action) emit(t event.Type, payload interface{}) {
	a.events = append(a.events, event.New(t, payload, a.now))
}

func (a *action) actor() event.Actor {
	return event.Actor{GuildID: a.p.GuildID, PlayerID: a.p.PlayerID}
}

// mutate runs fn inside one traced profile mutation. Events recorded by fn are
// published only after the save commits; a retried attempt starts from scratch.
func (s *service) mutate(ctx context.Context, span string, key domain.ProfileKey, fn func(ctx context.Context, a *action) error) (*action, error) {
	ctx, sp := s.tracer.Start(ctx, span, trace.WithAttributes(
		attribute.String(AttrGuildID, key.GuildID),
		attribute.String(AttrPlayerID, key.PlayerID),
	))
	defer sp.End()

	var a *action
	p, err := s.profiles.Mutate(ctx, key, func(p *domain.PlayerProfile, now time.Time) error {
		a = &action{p: p, now: now, level: p.Level}
		if err := fn(ctx, a); err != nil {
			return err
		}
		if p.Level > a.level {
			a.emit(event.PlayerLeveledUp, event.LevelUpPayloadV1{Actor: a.actor(), OldLevel: a.level, NewLevel: p.Level})
		}
		return nil
	})
	if err != nil {
		recordError(ctx, sp, err)
		return nil, err
	}
	a.p = p

	if p.Level > a.level {
		logger.FromContext(ctx).Info(LogMsgLevelUp, "player", p.PlayerID, "level", p.Level)
	}
	if s.publisher != nil {
		for _, evt := range a.events {
			s.publisher.PublishWithRetry(ctx, evt)
		}
	}
	return a, nil
}

func recordError(ctx context.Context, sp trace.Span, err error) {
	kind := domain.KindOf(err)
	sp.SetAttributes(attribute.String(AttrErrKind, kind.String()))
	sp.RecordError(err)
	if kind == domain.KindFatal || kind == domain.KindUnknown {
		sp.SetStatus(codes.Error, err.Error())
		logger.FromContext(ctx).Error(LogMsgActionFailed, "error", err)
		return
	}
	logger.FromContext(ctx).Debug(LogMsgActionFailed, "kind", kind.String(), "error", err)
}

// progress feeds an engine action into the mission tracker of the same mutation
func (s *service) progress(ctx context.Context, a *action, progressType string, amount int) error {
	s.engines.Missions.Ensure(ctx, a.p, a.now)
	completed, err := s.engines.Missions.HandleProgress(ctx, a.p, progressType, amount)
	if err != nil {
		return err
	}
	for _, m := range completed {
		a.emit(event.MissionCompleted, missionPayload(a, m))
	}
	a.completed = append(a.completed, completed...)
	return nil
}

func missionPayload(a *action, m domain.Mission) event.MissionPayloadV1 {
	return event.MissionPayloadV1{
		Actor:     a.actor(),
		MissionID: m.ID,
		Scope:     string(m.Scope),
		Type:      m.Type,
		Goal:      m.Goal,
	}
}

func newOutcome[T any](a *action, result T) *Outcome[T] {
	return &Outcome[T]{
		Result:            result,
		MissionsCompleted: a.completed,
		Level:             a.p.Level,
		LevelsGained:      a.p.Level - a.level,
		Coins:             a.p.Currency.Coins,
		Tokens:            a.p.Currency.Tokens,
	}
}

// GetProfile returns the stored profile without creating one
func (s *service) GetProfile(ctx context.Context, key domain.ProfileKey) (*ProfileView, error) {
	ctx, sp := s.tracer.Start(ctx, SpanGetProfile, trace.WithAttributes(
		attribute.String(AttrGuildID, key.GuildID),
		attribute.String(AttrPlayerID, key.PlayerID),
	))
	defer sp.End()

	p, err := s.profiles.Get(ctx, key)
	if err != nil {
		recordError(ctx, sp, err)
		return nil, err
	}
	view, err := s.view(p)
	if err != nil {
		recordError(ctx, sp, err)
		return nil, err
	}
	return view, nil
}

func (s *service) view(p *domain.PlayerProfile) (*ProfileView, error) {
	carried, err := s.engines.Ledger.Weight(p)
	if err != nil {
		return nil, err
	}
	free, err := s.engines.Ledger.FreeCapacity(p)
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		PlayerProfile: p,
		LevelStartXP:  s.engines.Curve.XPForLevel(p.Level),
		XPToNext:      s.engines.Curve.ToNext(p.TotalXP),
		CarriedWeight: carried,
		FreeCapacity:  free,
	}, nil
}

// Mine performs one mining action in the player's current zone
func (s *service) Mine(ctx context.Context, key domain.ProfileKey) (*Outcome[*mining.Result], error) {
	var res *mining.Result
	a, err := s.mutate(ctx, SpanMine, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Mining.Mine(ctx, a.p, a.now); err != nil {
			return err
		}
		a.emit(event.MaterialMined, event.MinedPayloadV1{
			Actor:      a.actor(),
			ZoneID:     res.ZoneID,
			MaterialID: res.MaterialID,
			Quantity:   res.Quantity,
			Quality:    res.Quality,
			Rare:       res.RareReroll,
		})
		if res.ToolBroken {
			a.emit(event.ToolBroken, event.ToolPayloadV1{Actor: a.actor(), ToolID: res.ToolID})
		}
		return s.progress(ctx, a, domain.ProgressMine, 1)
	})
	if err != nil {
		return nil, err
	}
	return newOutcome(a, res), nil
}

// SetZone moves the player to another mining zone
func (s *service) SetZone(ctx context.Context, key domain.ProfileKey, zoneID string) (*domain.Zone, error) {
	var zone domain.Zone
	_, err := s.mutate(ctx, SpanSetZone, key, func(ctx context.Context, a *action) error {
		var err error
		zone, err = s.engines.Mining.SetZone(ctx, a.p, zoneID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// Craft attempts one blueprint. Costs are paid whether or not the roll succeeds.
func (s *service) Craft(ctx context.Context, key domain.ProfileKey, blueprintID string) (*Outcome[*crafting.Result], error) {
	var res *crafting.Result
	a, err := s.mutate(ctx, SpanCraft, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Crafting.Craft(ctx, a.p, blueprintID, a.now); err != nil {
			return err
		}
		a.emit(event.CraftAttempted, event.CraftPayloadV1{
			Actor:       a.actor(),
			BlueprintID: res.BlueprintID,
			Crafted:     res.Crafted,
			SuccessRate: res.SuccessRate,
		})
		if !res.Crafted {
			return nil
		}
		return s.progress(ctx, a, domain.ProgressCraft, 1)
	})
	if err != nil {
		return nil, err
	}
	return newOutcome(a, res), nil
}

// EquipTool equips an owned, unbroken tool
func (s *service) EquipTool(ctx context.Context, key domain.ProfileKey, toolID string) (*domain.Tool, error) {
	var tool domain.Tool
	_, err := s.mutate(ctx, SpanEquipTool, key, func(_ context.Context, a *action) error {
		t, err := s.engines.Ledger.EquipTool(a.p, toolID)
		if err != nil {
			return err
		}
		tool = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// RepairTool restores a tool to full durability
func (s *service) RepairTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.RepairResult, error) {
	var res ledger.RepairResult
	_, err := s.mutate(ctx, SpanRepairTool, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Ledger.RepairTool(a.p, toolID); err != nil {
			return err
		}
		a.emit(event.ToolRepaired, event.ToolPayloadV1{Actor: a.actor(), ToolID: res.ToolID, Cost: res.Cost})
		return s.progress(ctx, a, domain.ProgressRepair, 1)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpgradeTool raises a tool's upgrade level
func (s *service) UpgradeTool(ctx context.Context, key domain.ProfileKey, toolID string) (*ledger.UpgradeResult, error) {
	var res ledger.UpgradeResult
	_, err := s.mutate(ctx, SpanUpgradeTool, key, func(_ context.Context, a *action) error {
		var err error
		if res, err = s.engines.Ledger.UpgradeTool(a.p, toolID); err != nil {
			return err
		}
		a.emit(event.ToolUpgraded, event.ToolPayloadV1{
			Actor:  a.actor(),
			ToolID: res.ToolID,
			Cost:   res.Cost,
			Level:  res.NewLevel,
			Tier:   res.NewTier,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// JoinJob enrolls the player in a job
func (s *service) JoinJob(ctx context.Context, key domain.ProfileKey, jobID string) (*domain.JobRecord, error) {
	var rec domain.JobRecord
	_, err := s.mutate(ctx, SpanJoinJob, key, func(ctx context.Context, a *action) error {
		r, err := s.engines.Jobs.Join(ctx, a.p, jobID, a.now)
		if err != nil {
			return err
		}
		rec = *r
		a.emit(event.JobJoined, event.JobPayloadV1{Actor: a.actor(), JobID: rec.JobID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LeaveJob removes a job membership
func (s *service) LeaveJob(ctx context.Context, key domain.ProfileKey, jobID string) error {
	_, err := s.mutate(ctx, SpanLeaveJob, key, func(ctx context.Context, a *action) error {
		if err := s.engines.Jobs.Leave(ctx, a.p, jobID, a.now); err != nil {
			return err
		}
		a.emit(event.JobLeft, event.JobPayloadV1{Actor: a.actor(), JobID: jobID})
		return nil
	})
	return err
}

// ActivateJob switches which joined job receives work and salary
func (s *service) ActivateJob(ctx context.Context, key domain.ProfileKey, jobID string) error {
	_, err := s.mutate(ctx, SpanActivateJob, key, func(ctx context.Context, a *action) error {
		return s.engines.Jobs.Activate(ctx, a.p, jobID)
	})
	return err
}

// Work performs one shift of the active job
func (s *service) Work(ctx context.Context, key domain.ProfileKey) (*Outcome[*job.WorkResult], error) {
	var res *job.WorkResult
	a, err := s.mutate(ctx, SpanWork, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Jobs.Work(ctx, a.p, a.now); err != nil {
			return err
		}
		a.emit(event.ShiftWorked, workPayload(a, res))
		if res.Failed {
			return nil
		}
		return s.progress(ctx, a, domain.ProgressWork, 1)
	})
	if err != nil {
		return nil, err
	}
	return newOutcome(a, res), nil
}

func workPayload(a *action, res *job.WorkResult) event.WorkPayloadV1 {
	payload := event.WorkPayloadV1{
		Actor:    a.actor(),
		JobID:    res.JobID,
		Failed:   res.Failed,
		Penalty:  res.Penalty,
		JobLevel: res.Level,
		LevelUp:  res.LevelsGained > 0,
	}
	for _, po := range res.Payouts {
		if po.Currency != domain.CurrencyCoins {
			continue
		}
		payload.Gross += po.Gross
		payload.Tax += po.Tax
		payload.TaxEvaded += po.Saved
		payload.Net += po.Net
	}
	return payload
}

// ClaimSalary pays the weekly or monthly salary of the active job
func (s *service) ClaimSalary(ctx context.Context, key domain.ProfileKey, period string) (*job.SalaryResult, error) {
	var claim func(context.Context, *domain.PlayerProfile, time.Time) (*job.SalaryResult, error)
	switch period {
	case job.PeriodWeekly:
		claim = s.engines.Jobs.ClaimWeeklySalary
	case job.PeriodMonthly:
		claim = s.engines.Jobs.ClaimMonthlySalary
	default:
		return nil, fmt.Errorf(ErrFmtUnknownPeriod, domain.ErrInvalidInput, period)
	}

	var res *job.SalaryResult
	_, err := s.mutate(ctx, SpanClaimSalary, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = claim(ctx, a.p, a.now); err != nil {
			return err
		}
		payload := event.SalaryPayloadV1{Actor: a.actor(), JobID: res.JobID, Period: res.Period}
		for _, line := range res.Paid {
			switch line.Currency {
			case domain.CurrencyCoins:
				payload.Coins += line.Amount
			case domain.CurrencyTokens:
				payload.Tokens += line.Amount
			}
		}
		a.emit(event.SalaryClaimed, payload)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Missions returns the player's mission sets, regenerating any whose epoch rolled over
func (s *service) Missions(ctx context.Context, key domain.ProfileKey) (*MissionBoard, error) {
	var regenerated []domain.MissionScope
	a, err := s.mutate(ctx, SpanMissions, key, func(ctx context.Context, a *action) error {
		regenerated = s.engines.Missions.Ensure(ctx, a.p, a.now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	board := &MissionBoard{
		Daily:         a.p.Missions.Daily,
		Weekly:        a.p.Missions.Weekly,
		DailyResetAt:  s.engines.Missions.NextEpoch(a.p, domain.ScopeDaily),
		WeeklyResetAt: s.engines.Missions.NextEpoch(a.p, domain.ScopeWeekly),
	}
	for _, scope := range regenerated {
		board.Regenerated = append(board.Regenerated, string(scope))
	}
	return board, nil
}

// ClaimMission pays a completed mission
func (s *service) ClaimMission(ctx context.Context, key domain.ProfileKey, missionID string) (*Outcome[*mission.ClaimResult], error) {
	var res *mission.ClaimResult
	a, err := s.mutate(ctx, SpanClaimMission, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Missions.Claim(ctx, a.p, missionID, a.now); err != nil {
			return err
		}
		a.emit(event.MissionClaimed, missionPayload(a, res.Mission))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newOutcome(a, res), nil
}

// RecordProgress feeds an external trigger, such as a chat message, into the missions
func (s *service) RecordProgress(ctx context.Context, key domain.ProfileKey, progressType string, amount int) ([]domain.Mission, error) {
	a, err := s.mutate(ctx, SpanRecordProgress, key, func(ctx context.Context, a *action) error {
		return s.progress(ctx, a, progressType, amount)
	})
	if err != nil {
		return nil, err
	}
	return a.completed, nil
}

// OpenLootbox opens one box from the inventory or ad hoc
func (s *service) OpenLootbox(ctx context.Context, key domain.ProfileKey, boxID, source string) (*Outcome[*lootbox.Result], error) {
	var res *lootbox.Result
	a, err := s.mutate(ctx, SpanOpenLootbox, key, func(ctx context.Context, a *action) error {
		var err error
		if res, err = s.engines.Lootbox.Open(ctx, a.p, boxID, source, a.now); err != nil {
			return err
		}
		a.emit(event.LootboxOpened, event.LootboxPayloadV1{
			Actor:         a.actor(),
			BoxID:         res.BoxID,
			Source:        res.Source,
			Rewards:       len(res.Reward.Granted),
			Lucky:         res.Lucky,
			Jackpot:       res.Jackpot,
			PityTriggered: res.PityTriggered,
		})
		return s.progress(ctx, a, domain.ProgressOpenLootbox, 1)
	})
	if err != nil {
		return nil, err
	}
	return newOutcome(a, res), nil
}

// ConflictReporter adapts a publisher into a profile.Config.OnConflict hook
func ConflictReporter(pub Publisher) func(domain.ProfileKey) {
	return func(key domain.ProfileKey) {
		pub.PublishWithRetry(context.Background(), event.New(event.ProfileStoreConflict,
			event.Actor{GuildID: key.GuildID, PlayerID: key.PlayerID}, time.Now()))
	}
}
