package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// qTable holds one value per action. There is a single state, so the table is
// shaped like the action space: rows x cols, flattened row-major.
type qTable struct {
	rows int
	cols int
	data []float64
}

func newQTable(rows, cols int) *qTable {
	return &qTable{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (q *qTable) get(action int) float64 {
	return q.data[action]
}

func (q *qTable) set(action int, value float64) {
	q.data[action] = value
}

// decay shrinks every value before a new keeper's block.
func (q *qTable) decay(factor float64) {
	floats.Scale(factor, q.data)
}

// update applies one Q-learning step. The bootstrap max runs over the whole
// table, including the entry being updated: the game has one state and every
// kick returns to it.
func (q *qTable) update(action int, reward, alpha, gamma float64) float64 {
	current := q.data[action]
	target := reward + gamma*q.maxValue()
	updated := current + alpha*(target-current)
	q.data[action] = updated
	return updated
}

func (q *qTable) maxValue() float64 {
	return floats.Max(q.data)
}

// argmax returns the lowest action index holding the maximum.
func (q *qTable) argmax() int {
	return floats.MaxIdx(q.data)
}

func (q *qTable) finite(action int) bool {
	v := q.data[action]
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (q *qTable) values() []float64 {
	out := make([]float64, len(q.data))
	copy(out, q.data)
	return out
}

func (q *qTable) grid() [][]float64 {
	return reshape(q.data, q.rows, q.cols)
}

func reshape(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		copy(out[r], flat[r*cols:(r+1)*cols])
	}
	return out
}
