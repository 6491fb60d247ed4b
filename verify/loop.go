package verify

import (
	"fmt"
	"math"
	"time"
)

// Position is a position that can count its own perft leaf nodes.
// Perft(0) must return 1.
type Position interface {
	Perft(depth int) uint64
}

// Engine constructs the standard initial position.
type Engine interface {
	StartPosition() (Position, error)
}

// Clock supplies timestamps for measuring a perft call.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock reads the system clock.
var WallClock Clock = wallClock{}

// DefaultBudget is the per-depth elapsed time after which the run stops.
const DefaultBudget = Budget(30 * time.Second)

// Budget bounds a run: once a single depth takes longer than the budget, no
// further depths are attempted.
type Budget time.Duration

// Seconds returns the budget in seconds.
func (b Budget) Seconds() float64 { return time.Duration(b).Seconds() }

// Exceeded reports whether elapsed is strictly greater than the budget.
func (b Budget) Exceeded(seconds float64) bool {
	return seconds > b.Seconds()
}

// NodesPerSecond returns nodes/seconds, or +Inf when seconds is zero.
func NodesPerSecond(nodes uint64, seconds float64) float64 {
	if seconds > 0 {
		return float64(nodes) / seconds
	}
	return math.Inf(1)
}

// Measurement is the outcome of one perft call.
type Measurement struct {
	Case           Case
	Elapsed        time.Duration
	Seconds        float64
	Nodes          uint64
	NodesPerSecond float64
	Match          bool
}

// State of a Loop.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StopReason says why a Loop reached Stopped.
type StopReason int

const (
	NotStopped StopReason = iota
	Exhausted
	TimeBudget
)

func (r StopReason) String() string {
	switch r {
	case NotStopped:
		return "not stopped"
	case Exhausted:
		return "table exhausted"
	case TimeBudget:
		return "time budget exceeded"
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// Sink receives measurements as they are taken and the early-stop notice.
type Sink interface {
	Row(m Measurement)
	Stopped(depth int, budget Budget)
}

// Loop walks a table one case at a time.
type Loop struct {
	table  Table
	engine Engine
	clock  Clock
	budget Budget
	sink   Sink

	next      int
	state     State
	reason    StopReason
	stopDepth int
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithSink sets where measurements are sent.
func WithSink(s Sink) Option {
	return func(l *Loop) { l.sink = s }
}

// NewLoop returns a Running loop over table.
func NewLoop(table Table, engine Engine, opts ...Option) *Loop {
	l := &Loop{
		table:  table,
		engine: engine,
		clock:  WallClock,
		budget: DefaultBudget,
		state:  Running,
	}
	for _, opt := range opts {
		opt(l)
	}
	if table.Len() == 0 {
		l.stop(Exhausted, 0)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Reason returns why the loop stopped, or NotStopped.
func (l *Loop) Reason() StopReason { return l.reason }

// StopDepth returns the depth of the last measured case once Stopped.
func (l *Loop) StopDepth() int { return l.stopDepth }

func (l *Loop) stop(reason StopReason, depth int) {
	l.state = Stopped
	l.reason = reason
	l.stopDepth = depth
}

// Step measures the next case. It returns false once the loop is Stopped and
// there was nothing to measure. Position construction errors are returned
// wrapped with the depth and leave the loop Running at the same case.
func (l *Loop) Step() (Measurement, bool, error) {
	if l.state == Stopped {
		return Measurement{}, false, nil
	}
	c := l.table.At(l.next)

	pos, err := l.engine.StartPosition()
	if err != nil {
		return Measurement{}, false, fmt.Errorf("depth %d: start position: %w", c.Depth, err)
	}

	start := l.clock.Now()
	nodes := pos.Perft(c.Depth)
	elapsed := l.clock.Now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	secs := elapsed.Seconds()
	m := Measurement{
		Case:           c,
		Elapsed:        elapsed,
		Seconds:        secs,
		Nodes:          nodes,
		NodesPerSecond: NodesPerSecond(nodes, secs),
		Match:          nodes == c.Expected,
	}
	if l.sink != nil {
		l.sink.Row(m)
	}

	l.next++
	switch {
	case l.budget.Exceeded(secs):
		l.stop(TimeBudget, c.Depth)
		if l.sink != nil {
			l.sink.Stopped(c.Depth, l.budget)
		}
	case l.next == l.table.Len():
		l.stop(Exhausted, c.Depth)
	}
	return m, true, nil
}

// Run steps until the loop is Stopped and returns every measurement taken.
func (l *Loop) Run() ([]Measurement, error) {
	var out []Measurement
	for {
		m, ok, err := l.Step()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, m)
	}
}
