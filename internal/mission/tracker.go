package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/reward"
	"github.com/osse101/brandish-progression/internal/utils"
)

var scopes = []domain.MissionScope{domain.ScopeDaily, domain.ScopeWeekly}

// Tracker generates mission sets, accumulates progress and pays claims.
// Epoch rollover is evaluated lazily against the cron schedule of each scope.
type Tracker struct {
	catalog *catalog.Catalog
	applier *reward.Applier
	rng     utils.RandomSource
	epochs  map[domain.MissionScope]cron.Schedule
	counts  map[domain.MissionScope]int
	perGoal int64
}

// NewTracker parses the mission schedules of the catalog rules
func NewTracker(c *catalog.Catalog, a *reward.Applier, rng utils.RandomSource) (*Tracker, error) {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	rules := c.Rules().Missions
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	daily, err := parser.Parse(rules.DailySchedule)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtSchedule, domain.ScopeDaily, rules.DailySchedule, err)
	}
	weekly, err := parser.Parse(rules.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtSchedule, domain.ScopeWeekly, rules.WeeklySchedule, err)
	}

	return &Tracker{
		catalog: c,
		applier: a,
		rng:     rng,
		epochs: map[domain.MissionScope]cron.Schedule{
			domain.ScopeDaily:  daily,
			domain.ScopeWeekly: weekly,
		},
		counts: map[domain.MissionScope]int{
			domain.ScopeDaily:  rules.DailyCount,
			domain.ScopeWeekly: rules.WeeklyCount,
		},
		perGoal: rules.RewardPerGoal,
	}, nil
}

// NextEpoch returns when the scope's current set becomes eligible for regeneration
func (t *Tracker) NextEpoch(p *domain.PlayerProfile, scope domain.MissionScope) time.Time {
	generated := p.Missions.GeneratedAt(scope)
	if generated.IsZero() {
		return time.Time{}
	}
	return t.epochs[scope].Next(generated.UTC())
}

// Ensure regenerates every scope that has no set, or whose epoch rolled over while
// nothing earned is left unclaimed. It returns the scopes it regenerated.
func (t *Tracker) Ensure(ctx context.Context, p *domain.PlayerProfile, now time.Time) []domain.MissionScope {
	log := logger.FromContext(ctx)

	var regenerated []domain.MissionScope
	for _, scope := range scopes {
		missions := p.Missions.Scope(scope)
		generated := p.Missions.GeneratedAt(scope)

		if len(missions) > 0 && !generated.IsZero() {
			if t.epochs[scope].Next(generated.UTC()).After(now.UTC()) {
				continue
			}
			if hasUnclaimedCompletion(missions) {
				log.Debug(LogMsgRegenBlocked, "player", p.PlayerID, "scope", scope)
				continue
			}
		}

		t.generate(ctx, p, scope, now)
		regenerated = append(regenerated, scope)
	}
	return regenerated
}

// generate replaces one scope's set with a shuffled selection from its pool
func (t *Tracker) generate(ctx context.Context, p *domain.PlayerProfile, scope domain.MissionScope, now time.Time) {
	pool := t.catalog.MissionPool(scope)
	for i := len(pool) - 1; i > 0; i-- {
		j := t.rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	count := min(t.counts[scope], len(pool))
	missions := make([]domain.Mission, 0, count)
	for _, def := range pool[:count] {
		goal := utils.RandomInt(t.rng, def.MinGoal, def.MaxGoal)
		missions = append(missions, domain.Mission{
			ID:          uuid.NewString(),
			Scope:       scope,
			Type:        catalog.NormalizeID(def.Type),
			Goal:        goal,
			RewardXP:    int64(goal) * t.perGoal,
			RewardCoins: int64(goal) * t.perGoal,
		})
	}
	p.Missions.Replace(scope, missions, now)

	logger.FromContext(ctx).Info(LogMsgGenerated, "player", p.PlayerID, "scope", scope, "count", len(missions))
}

func hasUnclaimedCompletion(missions []domain.Mission) bool {
	for _, m := range missions {
		if m.Completed && !m.Claimed {
			return true
		}
	}
	return false
}

// HandleProgress adds amount to every open mission of the given type in both scopes.
// Progress is clamped at the goal and never decreases. Returns the missions it completed.
func (t *Tracker) HandleProgress(ctx context.Context, p *domain.PlayerProfile, progressType string, amount int) ([]domain.Mission, error) {
	if amount < 0 {
		return nil, fmt.Errorf(ErrFmtAmount, domain.ErrInvalidAmount, amount)
	}
	if amount == 0 {
		return nil, nil
	}
	typ := catalog.NormalizeID(progressType)

	var completed []domain.Mission
	for _, set := range [][]domain.Mission{p.Missions.Daily, p.Missions.Weekly} {
		for i := range set {
			m := &set[i]
			if m.Completed || m.Type != typ {
				continue
			}
			m.Progress += min(amount, m.Goal-m.Progress)
			if m.Progress >= m.Goal {
				m.Completed = true
				completed = append(completed, *m)
				logger.FromContext(ctx).Info(LogMsgMissionComplete, "player", p.PlayerID, "mission", m.ID, "type", m.Type)
			}
		}
	}
	return completed, nil
}

// ClaimResult is the outcome of a mission claim
type ClaimResult struct {
	Mission     domain.Mission   `json:"mission"`
	Reward      reward.Applied   `json:"reward"`
	Regenerated bool             `json:"regenerated"`
	Missions    []domain.Mission `json:"missions,omitempty"`
}

// Claim pays a completed mission exactly once. When it was the last unclaimed
// mission of its scope the scope is regenerated immediately.
func (t *Tracker) Claim(ctx context.Context, p *domain.PlayerProfile, missionID string, now time.Time) (*ClaimResult, error) {
	m := p.FindMission(missionID)
	if m == nil {
		return nil, fmt.Errorf(ErrFmtNotFound, domain.ErrMissionNotFound, missionID)
	}
	if m.Claimed {
		return nil, fmt.Errorf(ErrFmtClaimed, domain.ErrMissionClaimed, missionID)
	}
	if !m.Completed {
		return nil, fmt.Errorf(ErrFmtNotCompleted, domain.ErrMissionNotCompleted, missionID, m.Progress, m.Goal)
	}

	rewards := []domain.Reward{
		{Kind: domain.RewardXP, Amount: m.RewardXP},
		{Kind: domain.RewardCoins, Amount: m.RewardCoins},
	}
	applied, err := t.applier.Apply(p, rewards, domain.OriginReward, now)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtReward, missionID, err)
	}
	m.Claimed = true
	p.Stats.MissionsClaimed++

	res := &ClaimResult{Mission: *m, Reward: applied}
	logger.FromContext(ctx).Info(LogMsgMissionClaimed, "player", p.PlayerID, "mission", m.ID,
		"xp", m.RewardXP, "coins", m.RewardCoins)

	scope := m.Scope
	if allClaimed(p.Missions.Scope(scope)) {
		t.generate(ctx, p, scope, now)
		res.Regenerated = true
		res.Missions = p.Missions.Scope(scope)
	}
	return res, nil
}

func allClaimed(missions []domain.Mission) bool {
	for _, m := range missions {
		if !m.Claimed {
			return false
		}
	}
	return true
}
