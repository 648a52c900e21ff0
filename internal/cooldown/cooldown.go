package cooldown

import (
	"fmt"
	"time"

	"github.com/osse101/brandish-progression/internal/domain"
)

// ErrOnCooldown is returned when an action is still on cooldown.
// It is a normal flow branch, not a failure: callers read Remaining with errors.As.
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf(ErrFmtOnCooldown, e.Action, e.Remaining.Round(time.Second))
}

// Is allows errors.Is() to match any ErrOnCooldown and domain.ErrCooldownActive
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrCooldownActive {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Until reports whether now is before until and how long remains
func Until(now, until time.Time) (bool, time.Duration) {
	if until.IsZero() || !now.Before(until) {
		return false, 0
	}
	return true, until.Sub(now)
}

// Since reports whether duration has not yet elapsed since last
func Since(now, last time.Time, duration time.Duration) (bool, time.Duration) {
	if last.IsZero() {
		return false, 0
	}
	return Until(now, last.Add(duration))
}

// CheckUntil returns ErrOnCooldown when now is before until
func CheckUntil(action string, now, until time.Time) error {
	if active, remaining := Until(now, until); active {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	return nil
}

// CheckSince returns ErrOnCooldown when duration has not elapsed since last
func CheckSince(action string, now, last time.Time, duration time.Duration) error {
	if active, remaining := Since(now, last, duration); active {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	return nil
}
