package ports

// Ticks counts elapsed time in units of 1/TicksPerSecond seconds.
type Ticks int64

// TicksPerSecond is the resolution of every Clock.
const TicksPerSecond Ticks = 1_000_000

// Clock samples monotonic elapsed time. Only differences between two samples
// from the same Clock are meaningful.
type Clock interface {
	Now() Ticks
}
