package cooldown

import (
	"time"
)

// Config holds the cooldown durations of every gated action
type Config struct {
	JobChange     time.Duration         `json:"job_change" yaml:"job_change"`
	WeeklySalary  time.Duration         `json:"weekly_salary" yaml:"weekly_salary"`
	MonthlySalary time.Duration         `json:"monthly_salary" yaml:"monthly_salary"`
	MiningByTier  map[int]time.Duration `json:"mining_by_tier" yaml:"mining_by_tier"`
}

// DefaultConfig returns the stock cooldowns. Mining shortens by a minute per tool tier.
func DefaultConfig() Config {
	return Config{
		JobChange:     DefaultJobChangeCooldown,
		WeeklySalary:  DefaultWeeklySalaryCooldown,
		MonthlySalary: DefaultMonthlySalaryCooldown,
		MiningByTier: map[int]time.Duration{
			1: 5 * time.Minute,
			2: 4 * time.Minute,
			3: 3 * time.Minute,
			4: 2 * time.Minute,
		},
	}
}

// WithDefaults fills every zero duration from DefaultConfig
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.JobChange <= 0 {
		c.JobChange = d.JobChange
	}
	if c.WeeklySalary <= 0 {
		c.WeeklySalary = d.WeeklySalary
	}
	if c.MonthlySalary <= 0 {
		c.MonthlySalary = d.MonthlySalary
	}
	if len(c.MiningByTier) == 0 {
		c.MiningByTier = d.MiningByTier
	}
	return c
}

// MiningCooldown returns the mining cooldown for a tool tier
func (c *Config) MiningCooldown(tier int) time.Duration {
	if c.MiningByTier != nil {
		if duration, ok := c.MiningByTier[tier]; ok {
			return duration
		}
	}
	return DefaultMiningCooldown
}
