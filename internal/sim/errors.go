package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a non-positive dt or duration.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrDiverged indicates a mover picked up a NaN or Inf component.
	ErrDiverged = errors.New("sim: state diverged (NaN or Inf detected)")
)

// StepError records where in a run a failure happened.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
