package engine

import "math"

// MissPenalty is the reward for any shot outside the goal mouth.
const MissPenalty = -5.0

const (
	lineGoalLow  = 5.0
	lineGoalHigh = 15.0
	gridGoalLow  = 0.0
	gridGoalHigh = 10.0
)

var (
	logFourThirds = math.Log(4.0 / 3.0)
	lineTailExp   = math.Log(2.0/5.0) / logFourThirds
	lineSlopeExp  = math.Log(2.0) / logFourThirds
)

func inLineGoal(x float64) bool {
	return x >= lineGoalLow && x <= lineGoalHigh
}

func inGridGoal(x, y float64) bool {
	return x >= gridGoalLow && x <= gridGoalHigh && y >= gridGoalLow && y <= gridGoalHigh
}

// LineReward scores a 1-D shot at x against a three-parameter keeper.
func LineReward(x float64, k Keeper) (float64, error) {
	if !inLineGoal(x) {
		return MissPenalty, nil
	}
	if err := k.check(lineKeeperDims); err != nil {
		return 0, err
	}
	pa, pb, pc := k[0], k[1], k[2]
	ratio := pb * pb / (pa * pc)
	num := (pa * pa / pb) * math.Pow(ratio, lineTailExp)
	den := math.Pow((pa/pb)*math.Pow(ratio, lineSlopeExp), x/5)
	mult := math.Pow(x, math.Log(ratio)/logFourThirds)
	return finiteReward(1 - (num/den)*mult)
}

// GridReward scores a 2-D shot at (x, y) against a four-parameter keeper.
func GridReward(x, y float64, k Keeper) (float64, error) {
	if !inGridGoal(x, y) {
		return MissPenalty, nil
	}
	if err := k.check(gridKeeperDims); err != nil {
		return 0, err
	}
	pa, pb, pc, pd := k[0], k[1], k[2], k[3]
	sq := x*x + y*y
	num := math.Pow(pa, 9.0/8.0) *
		math.Pow(pb, (x-y)*(3*x-y)/100) *
		math.Pow(pc, (x-y)*(x-3*y)/100) *
		math.Pow(pa, x*y/25) *
		math.Pow(pd, x*y/25)
	den := math.Pow(pd, 1.0/8.0) * math.Pow(pa, 0.03*sq) * math.Pow(pd, 0.01*sq)
	return finiteReward(1 - num/den)
}

func finiteReward(r float64) (float64, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, &NumericalDomainError{Param: "reward", Value: r, Reason: "reward is not finite"}
	}
	return r, nil
}

// rewardFunc adapts a variant's reward to the action space's shots.
type rewardFunc func(shot Shot, k Keeper) (float64, error)

func rewardFor(v Variant) rewardFunc {
	if v == VariantGrid {
		return func(shot Shot, k Keeper) (float64, error) {
			return GridReward(float64(shot.X), float64(shot.Y), k)
		}
	}
	return func(shot Shot, k Keeper) (float64, error) {
		return LineReward(float64(shot.X), k)
	}
}
