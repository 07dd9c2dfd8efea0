package clock

import "time"

// DefaultTickPeriod is the nominal average interval between counter increments.
const DefaultTickPeriod = 400 * time.Millisecond

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// TickSource exposes a monotonic counter that advances roughly every Period.
// It is read independently of Clock so a skewed wall clock can be detected.
type TickSource interface {
	Tick() uint64
	Period() time.Duration
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// SystemTicker derives ticks from elapsed time since Epoch.
type SystemTicker struct {
	Epoch      time.Time
	TickPeriod time.Duration
}

func NewSystemTicker(epoch time.Time, period time.Duration) SystemTicker {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return SystemTicker{Epoch: epoch, TickPeriod: period}
}

func (s SystemTicker) Tick() uint64 {
	elapsed := time.Since(s.Epoch)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / s.TickPeriod)
}

func (s SystemTicker) Period() time.Duration {
	return s.TickPeriod
}
