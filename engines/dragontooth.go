package engines

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"chess-perft/verify"
)

// Dragontooth is the dragontoothmg legal move generator.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontooth" }

func (Dragontooth) StartPosition() (verify.Position, error) {
	b, err := parseDragontooth(dragontoothmg.Startpos)
	if err != nil {
		return nil, err
	}
	return dragontoothPosition{&b}, nil
}

func (Dragontooth) Divide(fen string, depth int) (map[string]uint64, error) {
	if err := checkDivideDepth(depth); err != nil {
		return nil, err
	}
	b, err := parseDragontooth(fen)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = dragontoothPerft(&b, depth-1)
		undo()
	}
	return out, nil
}

// parseDragontooth converts the parser's panics on malformed input into errors.
func parseDragontooth(fen string) (b dragontoothmg.Board, err error) {
	if n := len(strings.Fields(fen)); n < 4 {
		return b, fmt.Errorf("dragontooth: parse fen %q: %d fields, want at least 4", fen, n)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dragontooth: parse fen %q: %v", fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

type dragontoothPosition struct {
	board *dragontoothmg.Board
}

func (p dragontoothPosition) Perft(depth int) uint64 {
	return dragontoothPerft(p.board, depth)
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}
