// Package clock implements ports.Clock.
package clock

import (
	"sync"
	"time"

	"github.com/corey/ctags/internal/ports"
)

// Monotonic reads Go's monotonic clock relative to its creation.
type Monotonic struct {
	start time.Time
}

// NewMonotonic starts a clock at zero.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns the ticks elapsed since the clock was created.
func (m *Monotonic) Now() ports.Ticks {
	return toTicks(time.Since(m.start))
}

// Manual is a clock that only moves when told to. A non-zero Step advances
// it by that much after every reading, so each interval between two
// readings lasts exactly Step.
type Manual struct {
	Step time.Duration

	mu  sync.Mutex
	now ports.Ticks
}

// Now returns the current reading.
func (m *Manual) Now() ports.Ticks {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now
	m.now += toTicks(m.Step)
	return now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += toTicks(d)
	m.mu.Unlock()
}

func toTicks(d time.Duration) ports.Ticks {
	return ports.Ticks(d / (time.Second / time.Duration(ports.TicksPerSecond)))
}
