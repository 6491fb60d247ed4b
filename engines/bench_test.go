package engines_test

import (
	"testing"

	"chess-perft/engines"
)

func benchPerft(b *testing.B, name string, depth int) {
	a, err := engines.ByName(name)
	if err != nil {
		b.Fatalf("ByName: %v", err)
	}
	pos, err := a.StartPosition()
	if err != nil {
		b.Fatalf("StartPosition: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.Perft(depth)
	}
}

func BenchmarkPerft_Goose_D4(b *testing.B) {
	benchPerft(b, "goose", 4)
}

func BenchmarkPerft_GooseParallel_D4(b *testing.B) {
	benchPerft(b, "goose-parallel", 4)
}

func BenchmarkPerft_Dragontooth_D4(b *testing.B) {
	benchPerft(b, "dragontooth", 4)
}

func BenchmarkPerft_Notnil_D3(b *testing.B) {
	benchPerft(b, "notnil", 3)
}
