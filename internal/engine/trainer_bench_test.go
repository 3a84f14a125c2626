package engine

import "testing"

func benchmarkOpponents(b *testing.B, cfg Config) {
	for i := 0; i < b.N; i++ {
		trainer, err := NewTrainer(cfg)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := trainer.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOpponentLine(b *testing.B) {
	cfg := DefaultConfig(VariantLine)
	cfg.NumOpponents = 1
	cfg.NumEpisodes = 10000
	cfg.Seed = 99
	benchmarkOpponents(b, cfg)
}

func BenchmarkOpponentGrid(b *testing.B) {
	cfg := DefaultConfig(VariantGrid)
	cfg.NumOpponents = 1
	cfg.NumEpisodes = 10000
	cfg.Seed = 99
	benchmarkOpponents(b, cfg)
}
