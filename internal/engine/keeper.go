package engine

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	lineKeeperDims = 3
	gridKeeperDims = 4
)

var keeperParamNames = [...]string{"p_a", "p_b", "p_c", "p_d"}

// Keeper holds one goalkeeper's ability parameters, each drawn from (0,1).
type Keeper []float64

// KeeperDims returns the number of parameters a keeper has in the variant.
func KeeperDims(v Variant) int {
	if v == VariantGrid {
		return gridKeeperDims
	}
	return lineKeeperDims
}

func paramName(i int) string {
	if i < len(keeperParamNames) {
		return keeperParamNames[i]
	}
	return fmt.Sprintf("p_%d", i)
}

func (k Keeper) check(dims int) error {
	if len(k) != dims {
		return &NumericalDomainError{
			Param:  "keeper",
			Value:  float64(len(k)),
			Reason: fmt.Sprintf("expected %d parameters", dims),
		}
	}
	for i, p := range k {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return &NumericalDomainError{Param: paramName(i), Value: p, Reason: "parameter is not finite"}
		}
		if p <= 0 {
			return &NumericalDomainError{Param: paramName(i), Value: p, Reason: "parameter must be positive (log/division of zero)"}
		}
	}
	return nil
}

func (k Keeper) clone() Keeper {
	out := make(Keeper, len(k))
	copy(out, k)
	return out
}

// sampleKeeper draws each parameter uniformly, re-drawing exact zeros.
func sampleKeeper(rng *rand.Rand, dims int) Keeper {
	k := make(Keeper, dims)
	for i := range k {
		p := rng.Float64()
		for p == 0 {
			p = rng.Float64()
		}
		k[i] = p
	}
	return k
}
