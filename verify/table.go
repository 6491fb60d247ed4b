// Package verify runs perft node counts against known reference values and
// reports timing, throughput and correctness per depth.
package verify

import (
	"errors"
	"fmt"
)

// ErrTableOrder is returned when a table's depths do not start at 0 or are
// not strictly increasing.
var ErrTableOrder = errors.New("reference table out of order")

// Case is one reference entry: the number of leaf positions reachable in
// exactly Depth half-moves from the standard starting position.
type Case struct {
	Depth    int
	Expected uint64
}

// Table is an ordered, read-only sequence of cases.
type Table struct {
	cases []Case
}

// Known perft values for the standard starting position.
var standardCases = []Case{
	{0, 1},
	{1, 20},
	{2, 400},
	{3, 8_902},
	{4, 197_281},
	{5, 4_865_609},
	{6, 119_060_324},
	{7, 3_195_901_860},
	{8, 84_998_978_956},
}

// StandardTable returns the reference table for the standard initial position.
func StandardTable() Table {
	return Table{cases: standardCases}
}

// NewTable builds a table from cases, which must start at depth 0 with
// strictly increasing depths.
func NewTable(cases ...Case) (Table, error) {
	t := Table{cases: append([]Case(nil), cases...)}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate checks the ordering invariant.
func (t Table) Validate() error {
	if len(t.cases) == 0 {
		return fmt.Errorf("%w: empty", ErrTableOrder)
	}
	if t.cases[0].Depth != 0 {
		return fmt.Errorf("%w: first depth is %d, want 0", ErrTableOrder, t.cases[0].Depth)
	}
	for i := 1; i < len(t.cases); i++ {
		if t.cases[i].Depth <= t.cases[i-1].Depth {
			return fmt.Errorf("%w: depth %d follows depth %d",
				ErrTableOrder, t.cases[i].Depth, t.cases[i-1].Depth)
		}
	}
	return nil
}

// Len returns the number of cases.
func (t Table) Len() int { return len(t.cases) }

// At returns the i-th case.
func (t Table) At(i int) Case { return t.cases[i] }

// Cases returns a copy of the cases in order.
func (t Table) Cases() []Case {
	return append([]Case(nil), t.cases...)
}
