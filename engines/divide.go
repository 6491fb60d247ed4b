package engines

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WriteDivide prints one "move: nodes" line per root move, sorted by move,
// followed by the total. It returns the total.
func WriteDivide(w io.Writer, div map[string]uint64) (uint64, error) {
	moves := maps.Keys(div)
	slices.Sort(moves)

	var sum uint64
	for _, m := range moves {
		sum += div[m]
		if _, err := fmt.Fprintf(w, "%s: %d\n", m, div[m]); err != nil {
			return sum, err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d\n", sum)
	return sum, err
}
