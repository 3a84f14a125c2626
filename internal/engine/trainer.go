package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAlphaInit     = 0.1
	DefaultGamma         = 0.9
	DefaultEpsilonInit   = 0.2
	DefaultEpisodes      = 100000
	DefaultDecayInit     = 0.99
	DefaultProgressEvery = 10000

	DefaultLineOpponents = 500
	DefaultGridOpponents = 100
)

type Config struct {
	Variant       Variant  `json:"variant"`
	AlphaInit     float64  `json:"alphaInit"`
	Gamma         float64  `json:"gamma"`
	EpsilonInit   float64  `json:"epsilonInit"`
	NumEpisodes   int      `json:"numEpisodes"`
	DecayInit     float64  `json:"decayInit"`
	NumOpponents  int      `json:"numOpponents"`
	Seed          int64    `json:"seed"`
	Keepers       []Keeper `json:"keepers,omitempty"`
	ProgressEvery int      `json:"progressEvery"`

	// Logger receives progress; nil discards it.
	Logger logrus.FieldLogger `json:"-"`
	// Rand overrides the seeded source. Keeper sampling and exploration share it.
	Rand *rand.Rand `json:"-"`
}

// DefaultConfig returns the stock hyperparameters for a variant. NumOpponents
// is left at zero and resolved by Validate.
func DefaultConfig(v Variant) Config {
	if v == "" {
		v = VariantLine
	}
	return Config{
		Variant:       v,
		AlphaInit:     DefaultAlphaInit,
		Gamma:         DefaultGamma,
		EpsilonInit:   DefaultEpsilonInit,
		NumEpisodes:   DefaultEpisodes,
		DecayInit:     DefaultDecayInit,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Validate checks hyperparameters. A zero NumOpponents becomes the number of
// fixed keepers, or the variant default when none are given.
func (c *Config) Validate() error {
	if c.Variant == "" {
		c.Variant = VariantLine
	}
	switch c.Variant {
	case VariantLine, VariantGrid:
	default:
		return &ConfigurationError{Field: "variant", Value: c.Variant, Reason: "must be 1d or 2d"}
	}
	if c.AlphaInit <= 0 || c.AlphaInit > 1 {
		return &ConfigurationError{Field: "alpha_init", Value: c.AlphaInit, Reason: "must be in (0,1]"}
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return &ConfigurationError{Field: "gamma", Value: c.Gamma, Reason: "must be in [0,1)"}
	}
	if c.EpsilonInit < 0 || c.EpsilonInit > 1 {
		return &ConfigurationError{Field: "epsilon_init", Value: c.EpsilonInit, Reason: "must be in [0,1]"}
	}
	if c.NumEpisodes <= 0 {
		return &ConfigurationError{Field: "num_episodes", Value: c.NumEpisodes, Reason: "must be positive"}
	}
	if c.DecayInit <= 0 || c.DecayInit > 1 {
		return &ConfigurationError{Field: "decay_init", Value: c.DecayInit, Reason: "must be in (0,1]"}
	}
	if c.NumOpponents == 0 {
		c.NumOpponents = defaultOpponents(c.Variant)
		if len(c.Keepers) > 0 {
			c.NumOpponents = len(c.Keepers)
		}
	}
	if len(c.Keepers) > 0 {
		if c.NumOpponents != len(c.Keepers) {
			return &ConfigurationError{Field: "num_opponents", Value: c.NumOpponents, Reason: "must match the number of fixed keepers"}
		}
		dims := KeeperDims(c.Variant)
		for _, k := range c.Keepers {
			if len(k) != dims {
				return &ConfigurationError{Field: "keepers", Value: k, Reason: "wrong number of parameters for variant"}
			}
		}
	}
	if c.NumOpponents <= 0 {
		return &ConfigurationError{Field: "num_opponents", Value: c.NumOpponents, Reason: "must be positive"}
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = DefaultProgressEvery
	}
	return nil
}

func defaultOpponents(v Variant) int {
	if v == VariantGrid {
		return DefaultGridOpponents
	}
	return DefaultLineOpponents
}

type Trainer struct {
	cfg      Config
	runID    uuid.UUID
	seed     int64
	rng      *rand.Rand
	space    ActionSpace
	reward   rewardFunc
	qvalues  *qTable
	agent    *epsilonGreedyAgent
	agg      *Aggregator
	log      logrus.FieldLogger
	observer func(OpponentResult)
	ran      bool
}

func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	rng := cfg.Rand
	if rng == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	cfg.Seed = seed
	logger := cfg.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	space := NewActionSpace(cfg.Variant)
	rows, cols := space.Dims()
	qvalues := newQTable(rows, cols)
	runID := uuid.New()
	return &Trainer{
		cfg:     cfg,
		runID:   runID,
		seed:    seed,
		rng:     rng,
		space:   space,
		reward:  rewardFor(cfg.Variant),
		qvalues: qvalues,
		agent:   newEpsilonGreedyAgent(rng, qvalues, cfg.EpsilonInit),
		agg:     NewAggregator(space.Len()),
		log:     logger.WithField("run", runID.String()),
	}, nil
}

// OnOpponent registers fn to receive each keeper's result as soon as its block ends.
func (t *Trainer) OnOpponent(fn func(OpponentResult)) {
	t.observer = fn
}

func (t *Trainer) Space() ActionSpace {
	return t.space
}

// Run trains against every keeper in sequence and returns the mean strategy.
// Any failure aborts the whole run.
func (t *Trainer) Run() (*Result, error) {
	if t.ran {
		return nil, ErrAlreadyRun
	}
	t.ran = true
	t.log.WithFields(logrus.Fields{
		"variant":   t.cfg.Variant,
		"opponents": t.cfg.NumOpponents,
		"episodes":  t.cfg.NumEpisodes,
		"seed":      t.seed,
	}).Info("training started")

	opponents := make([]OpponentResult, 0, t.cfg.NumOpponents)
	for i := 0; i < t.cfg.NumOpponents; i++ {
		res, err := t.runOpponent(i)
		if err != nil {
			t.log.WithError(err).Error("training aborted")
			return nil, err
		}
		opponents = append(opponents, res)
		if t.observer != nil {
			t.observer(res)
		}
	}
	mean, err := t.agg.Finalize(t.cfg.NumOpponents)
	if err != nil {
		return nil, err
	}
	result := &Result{
		RunID:     t.runID,
		Variant:   t.cfg.Variant,
		Seed:      t.seed,
		Config:    t.cfg,
		Space:     t.space,
		Opponents: opponents,
		Mean:      mean,
	}
	t.log.WithFields(logrus.Fields{
		"best":      result.Best().String(),
		"goal_mass": result.GoalMass(),
	}).Info("training finished")
	return result, nil
}

func (t *Trainer) nextKeeper(i int) Keeper {
	if len(t.cfg.Keepers) > 0 {
		return t.cfg.Keepers[i].clone()
	}
	return sampleKeeper(t.rng, KeeperDims(t.cfg.Variant))
}

func (t *Trainer) runOpponent(i int) (OpponentResult, error) {
	keeper := t.nextKeeper(i)
	if err := keeper.check(KeeperDims(t.cfg.Variant)); err != nil {
		return OpponentResult{}, &TrainingError{Opponent: i, Episode: 0, Err: err}
	}
	sched := t.cfg.ScheduleAt(i)
	log := t.log.WithFields(logrus.Fields{
		"opponent":  i + 1,
		"alpha":     sched.Alpha,
		"epsilon":   sched.Epsilon,
		"retention": sched.Retention,
	})
	log.Debugf("training goalkeeper %d/%d", i+1, t.cfg.NumOpponents)

	t.qvalues.decay(sched.Retention)
	t.agent.setEpsilon(sched.Epsilon)

	for episode := 0; episode < t.cfg.NumEpisodes; episode++ {
		if episode%t.cfg.ProgressEvery == 0 {
			log.WithField("episode", episode).Debugf("episode %d/%d", episode, t.cfg.NumEpisodes)
		}
		action := t.agent.act()
		shot := t.space.Shot(action)
		reward, err := t.reward(shot, keeper)
		if err != nil {
			return OpponentResult{}, &TrainingError{Opponent: i, Episode: episode, Err: err}
		}
		t.qvalues.update(action, reward, sched.Alpha, t.cfg.Gamma)
		if !t.qvalues.finite(action) {
			return OpponentResult{}, &TrainingError{Opponent: i, Episode: episode, Err: &InvariantViolation{
				Opponent: i,
				Episode:  episode,
				Action:   action,
				Shot:     shot,
				Value:    t.qvalues.get(action),
			}}
		}
	}

	dist := Softmax(t.qvalues.values())
	if err := t.agg.Accumulate(dist); err != nil {
		return OpponentResult{}, &TrainingError{Opponent: i, Episode: t.cfg.NumEpisodes, Err: err}
	}
	best := t.space.Shot(t.qvalues.argmax())
	log.WithField("best", best.String()).Debug("goalkeeper done")
	return OpponentResult{
		Index:        i,
		Keeper:       keeper,
		Schedule:     sched,
		Distribution: dist,
		Best:         best,
	}, nil
}

// QValues returns the current Q-table shaped rows x cols.
func (t *Trainer) QValues() [][]float64 {
	return t.qvalues.grid()
}
