package engine

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned when Run is called on a trainer that has already trained.
var ErrAlreadyRun = errors.New("trainer already ran")

// ConfigurationError reports an invalid hyperparameter, detected before training starts.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s (got %v): %s", e.Field, e.Value, e.Reason)
}

// NumericalDomainError reports a keeper parameter or reward value for which the
// reward formula is undefined (log or division of zero, overflow).
type NumericalDomainError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *NumericalDomainError) Error() string {
	return fmt.Sprintf("numerical domain: %s=%v: %s", e.Param, e.Value, e.Reason)
}

// InvariantViolation reports a non-finite Q-value after an update.
type InvariantViolation struct {
	Opponent int
	Episode  int
	Action   int
	Shot     Shot
	Value    float64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("q-value for action %d %s became %v (opponent %d, episode %d)",
		e.Action, e.Shot, e.Value, e.Opponent, e.Episode)
}

// TrainingError locates a failure inside the training loop.
type TrainingError struct {
	Opponent int
	Episode  int
	Err      error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("opponent %d episode %d: %v", e.Opponent, e.Episode, e.Err)
}

func (e *TrainingError) Unwrap() error {
	return e.Err
}
