package formulas

import (
	"errors"
	"fmt"
)

// Failure conditions returned by the calculations in this package.
// Callers match them with errors.Is; every returned error wraps exactly one.
var (
	// ErrInvalidRate is returned when a discount or candidate rate is <= -1 or not finite.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrDidNotConverge is returned when the IRR solver exhausts its iteration budget.
	// It is a legitimate negative answer, not a programming error.
	ErrDidNotConverge = errors.New("irr did not converge")

	// ErrZeroDerivative is returned when the NPV derivative vanishes during an IRR solve.
	ErrZeroDerivative = errors.New("zero derivative")

	// ErrEmptyInput is returned when a cash-flow series carries no non-zero flow.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidInput is returned for out-of-domain arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWindow is returned when a moving-average window does not fit the series.
	ErrInvalidWindow = errors.New("invalid window")
)

// ConvergenceError describes an IRR solve that ran out of iterations.
// It unwraps to ErrDidNotConverge.
type ConvergenceError struct {
	Iterations int
	LastRate   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d iterations (last rate %g)", ErrDidNotConverge, e.Iterations, e.LastRate)
}

// Unwrap lets errors.Is(err, ErrDidNotConverge) match.
func (e *ConvergenceError) Unwrap() error {
	return ErrDidNotConverge
}
