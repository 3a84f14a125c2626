package engine

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// DefaultDecimals matches the rounding of the reported probabilities.
const DefaultDecimals = 3

// OpponentResult is what one keeper's block produced.
type OpponentResult struct {
	Index        int       `json:"index"`
	Keeper       Keeper    `json:"keeper"`
	Schedule     Schedule  `json:"schedule"`
	Distribution []float64 `json:"distribution"`
	Best         Shot      `json:"-"`
}

// ShotProbability pairs a shot with its mean probability.
type ShotProbability struct {
	Shot        Shot
	Probability float64
}

// Result is the outcome of a full training run.
type Result struct {
	RunID     uuid.UUID
	Variant   Variant
	Seed      int64
	Config    Config
	Space     ActionSpace
	Opponents []OpponentResult
	Mean      []float64
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func (r *Result) Probability(shot Shot) (float64, bool) {
	action, ok := r.Space.Action(shot)
	if !ok {
		return 0, false
	}
	return r.Mean[action], true
}

// Final lists every shot with its rounded mean probability, in action order.
func (r *Result) Final(decimals int) []ShotProbability {
	out := make([]ShotProbability, len(r.Mean))
	for a, p := range r.Mean {
		out[a] = ShotProbability{Shot: r.Space.Shot(a), Probability: Round(p, decimals)}
	}
	return out
}

// FinalMap keys the rounded mean probabilities by shot label ("7" or "(3, 4)").
func (r *Result) FinalMap(decimals int) map[string]float64 {
	out := make(map[string]float64, len(r.Mean))
	for _, sp := range r.Final(decimals) {
		out[sp.Shot.String()] = sp.Probability
	}
	return out
}

// MeanGrid reshapes the mean distribution to rows x cols.
func (r *Result) MeanGrid() [][]float64 {
	rows, cols := r.Space.Dims()
	return reshape(r.Mean, rows, cols)
}

// GoalMass is the share of the mean strategy aimed inside the goal.
func (r *Result) GoalMass() float64 {
	var mass float64
	for a, p := range r.Mean {
		if r.Space.InGoal(r.Space.Shot(a)) {
			mass += p
		}
	}
	return mass
}

// Best returns the shot with the highest mean probability.
func (r *Result) Best() Shot {
	return r.Space.Shot(floats.MaxIdx(r.Mean))
}
