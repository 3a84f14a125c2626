package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	q := newQTable(21, 21)
	for a := range q.data {
		q.set(a, rng.NormFloat64()*10)
	}
	before := q.values()
	for _, f := range []float64{1, 0.99, 0.5, 0.01, 1e-6} {
		q.decay(f)
		for a := range q.data {
			assert.InEpsilon(t, before[a], q.get(a)/f, 1e-12)
		}
		q.decay(1 / f)
	}
}

func TestUpdateUsesWholeTableMax(t *testing.T) {
	q := newQTable(3, 1)
	q.set(0, 1)
	q.set(1, 4)
	q.set(2, -2)

	got := q.update(2, 1, 0.5, 0.9)
	// -2 + 0.5*(1 + 0.9*4 - (-2))
	assert.InDelta(t, 1.3, got, 1e-12)
	assert.Equal(t, got, q.get(2))

	// The updated entry is its own bootstrap when it holds the max.
	got = q.update(1, 1, 0.5, 0.9)
	assert.InDelta(t, 4+0.5*(1+0.9*4-4), got, 1e-12)
}

func TestGreedyFixedPoint(t *testing.T) {
	q := newQTable(2, 1)
	for i := 0; i < 5000; i++ {
		q.update(0, 0.5, 0.1, 0.9)
	}
	// Q = r + gamma*Q  =>  Q = r / (1 - gamma)
	assert.InDelta(t, 5, q.get(0), 1e-6)
}

func TestArgmaxPrefersLowestIndex(t *testing.T) {
	q := newQTable(21, 21)
	assert.Equal(t, 0, q.argmax())

	q.set(17, 3)
	q.set(300, 3)
	assert.Equal(t, 17, q.argmax())
	assert.Equal(t, 3.0, q.maxValue())
}

func TestFiniteCheck(t *testing.T) {
	q := newQTable(2, 1)
	require.True(t, q.finite(0))
	q.set(1, math.Inf(-1))
	assert.False(t, q.finite(1))
	q.set(1, math.NaN())
	assert.False(t, q.finite(1))
}

func TestGridShape(t *testing.T) {
	q := newQTable(2, 3)
	for a := range q.data {
		q.set(a, float64(a))
	}
	assert.Equal(t, [][]float64{{0, 1, 2}, {3, 4, 5}}, q.grid())
}
