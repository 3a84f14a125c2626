package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissPenaltyIgnoresKeeper(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, v := range []Variant{VariantLine, VariantGrid} {
		space := NewActionSpace(v)
		reward := rewardFor(v)
		keepers := []Keeper{make(Keeper, KeeperDims(v)), nil}
		for i := 0; i < 20; i++ {
			keepers = append(keepers, sampleKeeper(rng, KeeperDims(v)))
		}
		misses := 0
		for _, shot := range space.Shots() {
			if space.InGoal(shot) {
				continue
			}
			misses++
			for _, k := range keepers {
				r, err := reward(shot, k)
				require.NoError(t, err, "shot %s", shot)
				assert.Equal(t, MissPenalty, r, "shot %s", shot)
			}
		}
		if v == VariantLine {
			assert.Equal(t, 10, misses)
		} else {
			assert.Equal(t, 441-121, misses)
		}
	}
}

func TestEvenKeeperRewards(t *testing.T) {
	for x := 5; x <= 15; x++ {
		r, err := LineReward(float64(x), Keeper{0.5, 0.5, 0.5})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, r, 1e-12, "x=%d", x)
	}
	for x := 0; x <= 10; x++ {
		for y := 0; y <= 10; y++ {
			r, err := GridReward(float64(x), float64(y), Keeper{0.5, 0.5, 0.5, 0.5})
			require.NoError(t, err)
			assert.InDelta(t, 0.5, r, 1e-12, "x=%d y=%d", x, y)
		}
	}
}

func TestLineRewardKnownValue(t *testing.T) {
	k := Keeper{0.3, 0.6, 0.2}
	r, err := LineReward(9, k)
	require.NoError(t, err)
	assert.InDelta(t, 0.357409419, r, 1e-9)

	lo, err := LineReward(5, k)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, lo, 1e-9)
	hi, err := LineReward(15, k)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, hi, 1e-9)
}

func TestGridRewardKnownValue(t *testing.T) {
	// At the origin only the constant exponents survive: 1 - p_a^(9/8) / p_d^(1/8).
	r, err := GridReward(0, 0, Keeper{0.25, 0.3, 0.7, 0.9})
	require.NoError(t, err)
	assert.InDelta(t, 0.786989, r, 1e-6)
}

func TestRewardBoundaryShotsCount(t *testing.T) {
	k := Keeper{0.3, 0.6, 0.2}
	for _, x := range []float64{5, 15} {
		r, err := LineReward(x, k)
		require.NoError(t, err)
		assert.NotEqual(t, MissPenalty, r)
	}
	r, err := LineReward(4, k)
	require.NoError(t, err)
	assert.Equal(t, MissPenalty, r)
}

func TestZeroParamIsDomainError(t *testing.T) {
	_, err := LineReward(10, Keeper{0.5, 0.5, 0})
	var domainErr *NumericalDomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "p_c", domainErr.Param)

	_, err = GridReward(5, 5, Keeper{0, 0.5, 0.5, 0.5})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "p_a", domainErr.Param)

	_, err = GridReward(5, 5, Keeper{0.5, 0.5, 0.5})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "keeper", domainErr.Param)
}

func TestSampledKeepersArePositive(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		k := sampleKeeper(rng, gridKeeperDims)
		require.NoError(t, k.check(gridKeeperDims))
		for _, p := range k {
			assert.True(t, p > 0 && p < 1)
		}
	}
}
