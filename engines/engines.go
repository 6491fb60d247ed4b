// Package engines binds third-party chess move generators to the perft
// verification loop.
package engines

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-perft/verify"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Default is the engine used when none is named.
const Default = "goose"

var (
	ErrUnknownEngine = errors.New("unknown engine")
	ErrDepth         = errors.New("depth must be > 0")
)

// Divider reports the leaf count below every legal root move, keyed by the
// move in coordinate notation (e.g. "e2e4", "e7e8q").
type Divider interface {
	Divide(fen string, depth int) (map[string]uint64, error)
}

// Adapter is a named move generator.
type Adapter interface {
	verify.Engine
	Divider
	Name() string
}

var registry = map[string]Adapter{
	"goose":          Goose{},
	"goose-parallel": GooseParallel{},
	"dragontooth":    Dragontooth{},
	"notnil":         Notnil{},
}

// ByName returns the adapter registered under name.
func ByName(name string) (Adapter, error) {
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownEngine, name, Names())
	}
	return a, nil
}

// Names lists the registered adapters in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

func checkDivideDepth(depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w, got %d", ErrDepth, depth)
	}
	return nil
}
