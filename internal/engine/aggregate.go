package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax turns Q-values into the kicker's mixed strategy. Values are shifted
// by their max before exponentiating.
func Softmax(q []float64) []float64 {
	out := make([]float64, len(q))
	if len(q) == 0 {
		return out
	}
	shift := floats.Max(q)
	for i, v := range q {
		out[i] = math.Exp(v - shift)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

// Aggregator sums per-keeper distributions into the mean strategy.
type Aggregator struct {
	sum   []float64
	count int
}

func NewAggregator(size int) *Aggregator {
	return &Aggregator{sum: make([]float64, size)}
}

func (a *Aggregator) Accumulate(dist []float64) error {
	if len(dist) != len(a.sum) {
		return fmt.Errorf("distribution has %d entries, want %d", len(dist), len(a.sum))
	}
	floats.Add(a.sum, dist)
	a.count++
	return nil
}

func (a *Aggregator) Count() int {
	return a.count
}

// Finalize divides the running total by the number of opponents.
func (a *Aggregator) Finalize(opponents int) ([]float64, error) {
	if opponents <= 0 {
		return nil, fmt.Errorf("cannot average over %d opponents", opponents)
	}
	out := make([]float64, len(a.sum))
	copy(out, a.sum)
	floats.Scale(1/float64(opponents), out)
	return out, nil
}
