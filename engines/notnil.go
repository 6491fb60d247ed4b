package engines

import (
	"fmt"

	"github.com/notnil/chess"

	"chess-perft/verify"
)

// Notnil is the notnil/chess generator. Its positions are immutable, so it is
// far slower than the bitboard generators.
type Notnil struct{}

func (Notnil) Name() string { return "notnil" }

func (Notnil) StartPosition() (verify.Position, error) {
	return notnilPosition{chess.StartingPosition()}, nil
}

func (Notnil) Divide(fen string, depth int) (map[string]uint64, error) {
	if err := checkDivideDepth(depth); err != nil {
		return nil, err
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("notnil: parse fen %q: %w", fen, err)
	}
	pos := chess.NewGame(opt).Position()

	out := make(map[string]uint64)
	for _, m := range pos.ValidMoves() {
		out[m.String()] = notnilPerft(pos.Update(m), depth-1)
	}
	return out, nil
}

type notnilPosition struct {
	pos *chess.Position
}

func (p notnilPosition) Perft(depth int) uint64 {
	return notnilPerft(p.pos, depth)
}

func notnilPerft(pos *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += notnilPerft(pos.Update(m), depth-1)
	}
	return nodes
}
