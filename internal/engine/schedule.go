package engine

import "math"

const (
	scheduleSlowdown = 0.01
	retentionFalloff = 0.995
)

// Schedule holds the hyperparameters used for one keeper's block.
type Schedule struct {
	Alpha     float64 `json:"alpha"`
	Epsilon   float64 `json:"epsilon"`
	Retention float64 `json:"retention"`
}

// ScheduleAt computes the schedule for the i-th keeper (zero-based).
func (c Config) ScheduleAt(i int) Schedule {
	slow := 1 + scheduleSlowdown*float64(i)
	return Schedule{
		Alpha:     c.AlphaInit / slow,
		Epsilon:   c.EpsilonInit / slow,
		Retention: c.DecayInit * math.Pow(retentionFalloff, float64(i)),
	}
}
