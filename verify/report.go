package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	markMatch    = "Yes"
	markMismatch = "NO!"

	// Tip is printed after every report.
	Tip = "Tip: Build with `go build ./cmd/perft` and run the binary; `go run -race` timings are not representative."
)

// Report prints the fixed-width perft table.
type Report struct {
	w   io.Writer
	log zerolog.Logger
}

// NewReport writes to w and logs mismatches to log.
func NewReport(w io.Writer, log zerolog.Logger) *Report {
	return &Report{w: w, log: log}
}

// Begin prints the title block, the column header and the rule.
func (r *Report) Begin() {
	fmt.Fprintln(r.w, "=== Perft (Performance Test) ===")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Counting positions at each depth from standard starting position.")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%-8s %-18s %-12s %-18s Correct\n", "Depth", "Nodes", "Time (s)", "Nodes/sec")
	fmt.Fprintln(r.w, strings.Repeat("-", 70))
}

// Row prints one measurement.
func (r *Report) Row(m Measurement) {
	mark := markMatch
	if !m.Match {
		mark = markMismatch
		r.log.Warn().
			Int("depth", m.Case.Depth).
			Uint64("expected", m.Case.Expected).
			Uint64("nodes", m.Nodes).
			Msg("node count mismatch")
	}
	fmt.Fprintf(r.w, "%-8d %-18d %-12.3f %-18.0f %s\n",
		m.Case.Depth, m.Nodes, m.Seconds, m.NodesPerSecond, mark)
}

// Stopped prints the early termination notice.
func (r *Report) Stopped(depth int, budget Budget) {
	fmt.Fprintf(r.w, "\nStopping at depth %d (>%.0fs)\n", depth, budget.Seconds())
}

// End prints the trailing tip.
func (r *Report) End() {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, Tip)
}

// Verify runs the whole table against engine and writes the report to w.
func Verify(w io.Writer, log zerolog.Logger, table Table, engine Engine, opts ...Option) ([]Measurement, error) {
	rep := NewReport(w, log)
	rep.Begin()
	l := NewLoop(table, engine, append([]Option{WithSink(rep)}, opts...)...)
	ms, err := l.Run()
	if err != nil {
		return ms, err
	}
	rep.End()
	log.Debug().
		Int("rows", len(ms)).
		Stringer("reason", l.Reason()).
		Int("last_depth", l.StopDepth()).
		Msg("perft run complete")
	return ms, nil
}
