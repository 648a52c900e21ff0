package job

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/catalog"
	"github.com/osse101/brandish-progression/internal/cooldown"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/logger"
	"github.com/osse101/brandish-progression/internal/utils"
)

// Engine handles job membership, work shifts and salaries
type Engine struct {
	catalog *catalog.Catalog
	rng     utils.RandomSource
}

// NewEngine creates a job engine
func NewEngine(c *catalog.Catalog, rng utils.RandomSource) *Engine {
	if rng == nil {
		rng = utils.DefaultSource()
	}
	return &Engine{catalog: c, rng: rng}
}

// WorkResult is the outcome of one work shift
type WorkResult struct {
	JobID         string          `json:"job_id"`
	Failed        bool            `json:"failed"`
	Penalty       int64           `json:"penalty,omitempty"`
	Payouts       []Payout        `json:"payouts,omitempty"`
	XPGained      int64           `json:"xp_gained,omitempty"`
	LevelsGained  int             `json:"levels_gained,omitempty"`
	Level         int             `json:"level"`
	Rank          string          `json:"rank,omitempty"`
	RankChanged   bool            `json:"rank_changed,omitempty"`
	CooldownUntil time.Time       `json:"cooldown_until"`
	Stats         domain.JobStats `json:"stats"`
}

// Payout is the taxed payout of one currency
type Payout struct {
	Currency domain.CurrencyKind `json:"currency"`
	TaxBreakdown
}

// NetCoins sums the coins actually credited
func (r *WorkResult) NetCoins() int64 {
	var total int64
	for _, p := range r.Payouts {
		if p.Currency == domain.CurrencyCoins {
			total += p.Net
		}
	}
	return total
}

// SalaryResult is the outcome of a salary claim
type SalaryResult struct {
	JobID       string              `json:"job_id"`
	Period      string              `json:"period"`
	Paid        []domain.SalaryLine `json:"paid"`
	NextClaimAt time.Time           `json:"next_claim_at"`
}

// Join adds a job membership and makes it the active job
func (e *Engine) Join(ctx context.Context, p *domain.PlayerProfile, jobID string, now time.Time) (*domain.JobRecord, error) {
	def, ok := e.catalog.Job(jobID)
	if !ok {
		return nil, fmt.Errorf(ErrFmtUnknownJob, domain.ErrUnknownJob, jobID)
	}
	if p.HoldsJob(def.ID) {
		return nil, fmt.Errorf(ErrFmtAlreadyInJob, domain.ErrAlreadyInJob, def.ID)
	}
	if err := e.checkJobChange(p, now); err != nil {
		return nil, err
	}

	p.Jobs.Membership = append(p.Jobs.Membership, domain.JobRecord{
		JobID: def.ID,
		Level: 1,
		Rank:  RankFor(def, 1),
	})
	p.Jobs.ActiveJobID = def.ID
	p.Jobs.LastJobChangeAt = now

	logger.FromContext(ctx).Info(LogMsgJobJoined, "player", p.PlayerID, "job", def.ID)
	return p.FindJob(def.ID), nil
}

// Leave removes a job membership entirely, clearing the active job if it matched
func (e *Engine) Leave(ctx context.Context, p *domain.PlayerProfile, jobID string, now time.Time) error {
	id := catalog.NormalizeID(jobID)
	if !p.HoldsJob(id) {
		return fmt.Errorf(ErrFmtNotInJob, domain.ErrNotInJob, id)
	}
	if err := e.checkJobChange(p, now); err != nil {
		return err
	}

	p.RemoveJob(id)
	p.Jobs.LastJobChangeAt = now

	logger.FromContext(ctx).Info(LogMsgJobLeft, "player", p.PlayerID, "job", id)
	return nil
}

// Activate switches the active job among the jobs already held
func (e *Engine) Activate(ctx context.Context, p *domain.PlayerProfile, jobID string) error {
	id := catalog.NormalizeID(jobID)
	if !p.HoldsJob(id) {
		return fmt.Errorf(ErrFmtNotInJob, domain.ErrNotInJob, id)
	}
	p.Jobs.ActiveJobID = id
	logger.FromContext(ctx).Info(LogMsgJobActivated, "player", p.PlayerID, "job", id)
	return nil
}

func (e *Engine) checkJobChange(p *domain.PlayerProfile, now time.Time) error {
	cfg := e.catalog.Rules().Cooldowns
	return cooldown.CheckSince(cooldown.ActionJobChange, now, p.Jobs.LastJobChangeAt, cfg.JobChange)
}

// activeJob resolves the active membership and its definition
func (e *Engine) activeJob(p *domain.PlayerProfile) (*domain.JobRecord, domain.JobDef, error) {
	if p.Jobs.ActiveJobID == "" {
		return nil, domain.JobDef{}, domain.ErrNoActiveJob
	}
	rec := p.FindJob(p.Jobs.ActiveJobID)
	if rec == nil {
		return nil, domain.JobDef{}, domain.ErrNoActiveJob
	}
	def, ok := e.catalog.Job(rec.JobID)
	if !ok {
		return nil, domain.JobDef{}, fmt.Errorf(ErrFmtUnknownJob, domain.ErrUnknownJob, rec.JobID)
	}
	return rec, def, nil
}

// Work runs one shift of the active job. A failed shift costs a penalty and
// still starts the cooldown; a successful one pays taxed rewards and job XP.
func (e *Engine) Work(ctx context.Context, p *domain.PlayerProfile, now time.Time) (*WorkResult, error) {
	log := logger.FromContext(ctx)

	rec, def, err := e.activeJob(p)
	if err != nil {
		return nil, err
	}
	if err := cooldown.CheckUntil(cooldown.ActionWork, now, rec.CooldownUntil); err != nil {
		return nil, err
	}

	res := &WorkResult{JobID: def.ID}

	if utils.Roll(e.rng, def.FailChance) {
		penalty := utils.RandomInt64(e.rng, def.Penalty.Min, def.Penalty.Max)
		penalty = min(penalty, p.Currency.Coins)
		if err := p.Debit(domain.CurrencyCoins, penalty); err != nil {
			return nil, fmt.Errorf(ErrFmtPenalty, err)
		}
		rec.Stats.Shifts++
		rec.Stats.Failures++
		rec.Stats.PenaltiesPaid += penalty
		rec.CooldownUntil = now.Add(def.Cooldown)
		p.Stats.WorkFailed++

		res.Failed = true
		res.Penalty = penalty
		res.fill(rec)
		log.Info(LogMsgWorkFailed, "player", p.PlayerID, "job", def.ID, "penalty", penalty)
		return res, nil
	}

	for _, r := range def.Rewards {
		gross := utils.RandomInt64(e.rng, r.Min, r.Max)
		var b TaxBreakdown
		if rate, taxed := def.TaxRate(r.Currency); taxed {
			evaded := false
			reduction := 0.0
			if def.TaxEvasion != nil {
				evaded = utils.Roll(e.rng, def.TaxEvasion.Chance)
				reduction = def.TaxEvasion.Reduction
			}
			b = ComputeTax(gross, rate, evaded, reduction)
		} else {
			b = ComputeTax(gross, 0, false, 0)
		}
		if err := p.Credit(r.Currency, b.Net); err != nil {
			return nil, fmt.Errorf(ErrFmtPayout, err)
		}
		if b.Evaded {
			log.Debug(LogMsgTaxEvaded, "player", p.PlayerID, "job", def.ID, "saved", b.Saved)
		}
		rec.Stats.GrossEarned += b.Gross
		rec.Stats.TaxPaid += b.Tax
		rec.Stats.TaxEvaded += b.Saved
		res.Payouts = append(res.Payouts, Payout{Currency: r.Currency, TaxBreakdown: b})
	}

	if def.XPReward.Max > 0 {
		res.XPGained = utils.RandomInt64(e.rng, def.XPReward.Min, def.XPReward.Max)
		beforeRank := rec.Rank
		res.LevelsGained = AddJobXP(rec, def, res.XPGained)
		res.RankChanged = rec.Rank != beforeRank
		if res.LevelsGained > 0 {
			log.Info(LogMsgJobLevelUp, "player", p.PlayerID, "job", def.ID, "level", rec.Level, "rank", rec.Rank)
		}
	}

	rec.Stats.Shifts++
	rec.CooldownUntil = now.Add(def.Cooldown)
	p.Stats.Worked++
	res.fill(rec)

	log.Info(LogMsgWorkPaid, "player", p.PlayerID, "job", def.ID, "net_coins", res.NetCoins())
	return res, nil
}

func (r *WorkResult) fill(rec *domain.JobRecord) {
	r.Level = rec.Level
	r.Rank = rec.Rank
	r.CooldownUntil = rec.CooldownUntil
	r.Stats = rec.Stats
}

// AddJobXP accumulates xp and levels the record up while it crosses XPPerLevel.
// The rank is re-derived on every level up. At MaxLevel stored xp stays at zero.
func AddJobXP(rec *domain.JobRecord, def domain.JobDef, xp int64) int {
	if xp <= 0 || def.XPPerLevel <= 0 {
		return 0
	}
	if def.MaxLevel > 0 && rec.Level >= def.MaxLevel {
		rec.XP = 0
		return 0
	}

	levels := 0
	rec.XP += int(xp)
	for rec.XP >= def.XPPerLevel && (def.MaxLevel <= 0 || rec.Level < def.MaxLevel) {
		rec.XP -= def.XPPerLevel
		rec.Level++
		levels++
		rec.Rank = RankFor(def, rec.Level)
	}
	if def.MaxLevel > 0 && rec.Level >= def.MaxLevel {
		rec.XP = 0
	}
	return levels
}

// RankFor returns the highest rank whose threshold is at or below level.
// Ranks are stored sorted by descending threshold.
func RankFor(def domain.JobDef, level int) string {
	for _, r := range def.Ranks {
		if r.MinLevel <= level {
			return r.Name
		}
	}
	return ""
}

// ClaimWeeklySalary pays the active job's weekly salary
func (e *Engine) ClaimWeeklySalary(ctx context.Context, p *domain.PlayerProfile, now time.Time) (*SalaryResult, error) {
	return e.claimSalary(ctx, p, now, PeriodWeekly)
}

// ClaimMonthlySalary pays the active job's monthly salary
func (e *Engine) ClaimMonthlySalary(ctx context.Context, p *domain.PlayerProfile, now time.Time) (*SalaryResult, error) {
	return e.claimSalary(ctx, p, now, PeriodMonthly)
}

// claimSalary checks, in order: an active job, a salary for the period, the period's cooldown
func (e *Engine) claimSalary(ctx context.Context, p *domain.PlayerProfile, now time.Time, period string) (*SalaryResult, error) {
	_, def, err := e.activeJob(p)
	if err != nil {
		return nil, err
	}

	cfg := e.catalog.Rules().Cooldowns
	lines, last, wait, action := def.WeeklySalary, &p.Jobs.LastWeeklySalaryAt, cfg.WeeklySalary, cooldown.ActionWeeklySalary
	if period == PeriodMonthly {
		lines, last, wait, action = def.MonthlySalary, &p.Jobs.LastMonthlySalaryAt, cfg.MonthlySalary, cooldown.ActionMonthlySalary
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf(ErrFmtNoSuchSalary, domain.ErrNoSuchSalary, def.ID, period)
	}
	if err := cooldown.CheckSince(action, now, *last, wait); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if !line.Currency.Valid() {
			return nil, fmt.Errorf(ErrFmtSalary, period, domain.ErrUnknownCurrency)
		}
	}
	for _, line := range lines {
		if err := p.Credit(line.Currency, line.Amount); err != nil {
			return nil, fmt.Errorf(ErrFmtSalary, period, err)
		}
	}
	*last = now

	logger.FromContext(ctx).Info(LogMsgSalaryClaimed, "player", p.PlayerID, "job", def.ID, "period", period)
	return &SalaryResult{
		JobID:       def.ID,
		Period:      period,
		Paid:        lines,
		NextClaimAt: now.Add(wait),
	}, nil
}
