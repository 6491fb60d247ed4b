package engines

import (
	"fmt"
	"runtime"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/sync/errgroup"

	"chess-perft/verify"
)

// Goose is the GooseEngineMG bitboard generator.
type Goose struct{}

func (Goose) Name() string { return "goose" }

func (Goose) StartPosition() (verify.Position, error) {
	b, err := parseGoose(goosemg.FENStartPos)
	if err != nil {
		return nil, err
	}
	return goosePosition{b}, nil
}

func (Goose) Divide(fen string, depth int) (map[string]uint64, error) {
	if err := checkDivideDepth(depth); err != nil {
		return nil, err
	}
	b, err := parseGoose(fen)
	if err != nil {
		return nil, err
	}
	div := goosemg.PerftDivide(b, depth)
	out := make(map[string]uint64, len(div))
	for m, n := range div {
		out[m.String()] = n
	}
	return out, nil
}

func parseGoose(fen string) (*goosemg.Board, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("goose: parse fen %q: %w", fen, err)
	}
	return b, nil
}

type goosePosition struct {
	board *goosemg.Board
}

// Perft makes and unmakes moves on the board, leaving it unchanged.
func (p goosePosition) Perft(depth int) uint64 {
	return goosemg.Perft(p.board, depth)
}

// GooseParallel splits the root moves of the GooseEngineMG generator across
// goroutines. Workers <= 0 means GOMAXPROCS.
type GooseParallel struct {
	Workers int
}

func (GooseParallel) Name() string { return "goose-parallel" }

func (g GooseParallel) StartPosition() (verify.Position, error) {
	root, err := parseGoose(goosemg.FENStartPos)
	if err != nil {
		return nil, err
	}
	children, err := gooseChildren(root)
	if err != nil {
		return nil, err
	}
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelPosition{children: children, workers: workers}, nil
}

func (GooseParallel) Divide(fen string, depth int) (map[string]uint64, error) {
	return Goose{}.Divide(fen, depth)
}

// gooseChildren returns one independent board per legal root move. Each
// child is re-parsed from FEN so no board is shared between goroutines.
func gooseChildren(root *goosemg.Board) ([]*goosemg.Board, error) {
	var children []*goosemg.Board
	for _, m := range root.GenerateMoves() {
		ok, st := root.MakeMove(m)
		if !ok {
			continue
		}
		fen := root.ToFEN()
		root.UnmakeMove(m, st)

		child, err := parseGoose(fen)
		if err != nil {
			return nil, fmt.Errorf("goose: child after %s: %w", m, err)
		}
		children = append(children, child)
	}
	return children, nil
}

type parallelPosition struct {
	children []*goosemg.Board
	workers  int
}

func (p *parallelPosition) Perft(depth int) uint64 {
	switch depth {
	case 0:
		return 1
	case 1:
		return uint64(len(p.children))
	}

	counts := make([]uint64, len(p.children))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, child := range p.children {
		g.Go(func() error {
			counts[i] = goosemg.Perft(child, depth-1)
			return nil
		})
	}
	_ = g.Wait()

	var nodes uint64
	for _, n := range counts {
		nodes += n
	}
	return nodes
}
