package engine

import "math/rand"

type epsilonGreedyAgent struct {
	rng     *rand.Rand
	qvalues *qTable
	epsilon float64
}

func newEpsilonGreedyAgent(rng *rand.Rand, qvalues *qTable, epsilon float64) *epsilonGreedyAgent {
	return &epsilonGreedyAgent{rng: rng, qvalues: qvalues, epsilon: epsilon}
}

func (a *epsilonGreedyAgent) setEpsilon(epsilon float64) {
	a.epsilon = epsilon
}

// act explores uniformly over the whole action space with probability epsilon,
// otherwise exploits. Ties go to the lowest index so an all-zero table always
// yields action 0.
func (a *epsilonGreedyAgent) act() int {
	if a.rng.Float64() < a.epsilon {
		return a.rng.Intn(len(a.qvalues.data))
	}
	return a.qvalues.argmax()
}
