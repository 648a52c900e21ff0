package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/domain"
)

func TestSince(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	duration := 5 * time.Minute

	tests := []struct {
		name           string
		lastUsed       time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{
			name:           "never used",
			lastUsed:       time.Time{},
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "active cooldown",
			lastUsed:       now.Add(-2 * time.Minute),
			wantOnCooldown: true,
			wantRemaining:  3 * time.Minute,
		},
		{
			name:           "expired cooldown",
			lastUsed:       now.Add(-6 * time.Minute),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "exact boundary",
			lastUsed:       now.Add(-5 * time.Minute),
			wantOnCooldown: false,
			wantRemaining:  0,
		},
		{
			name:           "just before expiry",
			lastUsed:       now.Add(-5*time.Minute + time.Second),
			wantOnCooldown: true,
			wantRemaining:  time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOnCooldown, gotRemaining := Since(now, tt.lastUsed, duration)
			assert.Equal(t, tt.wantOnCooldown, gotOnCooldown)
			assert.Equal(t, tt.wantRemaining, gotRemaining)
		})
	}
}

func TestCheckUntil(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckUntil(ActionMine, now, time.Time{}))
	assert.NoError(t, CheckUntil(ActionMine, now, now))

	err := CheckUntil(ActionMine, now, now.Add(90*time.Second))
	require.Error(t, err)

	var cd ErrOnCooldown
	require.True(t, errors.As(err, &cd))
	assert.Equal(t, 90*time.Second, cd.Remaining)
	assert.ErrorIs(t, err, domain.ErrCooldownActive)
	assert.Equal(t, domain.KindCooldown, domain.KindOf(err))
}

func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		expected  string
	}{
		{42*time.Second + 400*time.Millisecond, "mine on cooldown for 42s"},
		{3*time.Minute + 5*time.Second, "mine on cooldown for 3m5s"},
		{26*time.Hour + 30*time.Minute, "mine on cooldown for 26h30m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrOnCooldown{Action: ActionMine, Remaining: tt.remaining}.Error())
		})
	}
}

func TestMiningCooldown(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		tier     int
		expected time.Duration
	}{
		{1, 5 * time.Minute},
		{2, 4 * time.Minute},
		{3, 3 * time.Minute},
		{4, 2 * time.Minute},
		{9, DefaultMiningCooldown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cfg.MiningCooldown(tt.tier), "tier %d", tt.tier)
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{JobChange: 10 * time.Minute}.WithDefaults()

	assert.Equal(t, 10*time.Minute, cfg.JobChange)
	assert.Equal(t, DefaultWeeklySalaryCooldown, cfg.WeeklySalary)
	assert.Equal(t, DefaultMonthlySalaryCooldown, cfg.MonthlySalary)
	assert.Len(t, cfg.MiningByTier, 4)
}
