package formulas

import (
	"fmt"
	"math"
)

const (
	// DefaultIRRGuess is the seed the solver starts from (10%).
	DefaultIRRGuess = 0.1
	// DefaultIRRMaxIterations bounds a solve when the caller has no preference.
	DefaultIRRMaxIterations = 100
	// DefaultIRRTolerance is the absolute NPV tolerance accepted as a root.
	DefaultIRRTolerance = 1e-6

	// machineEpsilon is the float64 spacing at 1.0.
	machineEpsilon = 0x1p-52
)

// IRROptions controls a single IRR solve
type IRROptions struct {
	Guess         float64 // Seed rate, must be > -1
	MaxIterations int     // Newton-Raphson steps allowed, must be >= 1
	Tolerance     float64 // Absolute tolerance on the objective, must be > 0
}

// DefaultIRROptions returns the seed, iteration budget and tolerance used by CalculateIRR
// callers that pass nothing else.
func DefaultIRROptions() IRROptions {
	return IRROptions{
		Guess:         DefaultIRRGuess,
		MaxIterations: DefaultIRRMaxIterations,
		Tolerance:     DefaultIRRTolerance,
	}
}

// IRRResult is a converged IRR solve
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Iterations int     `json:"iterations"`
}

// CalculateIRR calculates the Internal Rate of Return seeded at DefaultIRRGuess.
//
// Returns:
//
//	Rate as decimal (e.g., 0.128 = 12.8%), or an error. Non-convergence is
//	reported as a *ConvergenceError wrapping ErrDidNotConverge.
func CalculateIRR(cashFlows []float64, maxIterations int, tolerance float64) (float64, error) {
	res, err := SolveIRR(cashFlows, IRROptions{
		Guess:         DefaultIRRGuess,
		MaxIterations: maxIterations,
		Tolerance:     tolerance,
	})
	if err != nil {
		return 0, err
	}
	return res.Rate, nil
}

// SolveIRR finds a rate r such that f(r) ≈ 0 by Newton-Raphson from opts.Guess.
//
// The objective uses zero-based exponents, unlike CalculateNPV:
//
//	f(r)  = Σ cf[t] / (1+r)^t
//	f'(r) = Σ -t·cf[t] / (1+r)^(t+1)
//
// Iteration stops when |f(r)| < Tolerance (returns r) or when a Newton step
// moves the rate by less than machine epsilon (returns the stepped rate).
// At most one root, the one Newton reaches from the seed, is reported.
//
// Errors:
//   - ErrEmptyInput: no flows, or all flows are zero
//   - ErrInvalidInput: non-finite flows or invalid options
//   - ErrInvalidRate: seed or an iterate at or below -1
//   - ErrZeroDerivative: f'(r) == 0, or the step is not finite
//   - *ConvergenceError (ErrDidNotConverge): MaxIterations exhausted
func SolveIRR(cashFlows []float64, opts IRROptions) (IRRResult, error) {
	if err := validateIRRInput(cashFlows, opts); err != nil {
		return IRRResult{}, err
	}

	rate := opts.Guess
	for iter := 0; iter < opts.MaxIterations; iter++ {
		value, deriv := irrObjective(rate, cashFlows)

		if math.Abs(value) < opts.Tolerance {
			return IRRResult{Rate: rate, Iterations: iter + 1}, nil
		}

		if deriv == 0 {
			return IRRResult{}, fmt.Errorf("%w: at rate %g (iteration %d)", ErrZeroDerivative, rate, iter+1)
		}

		newRate := rate - value/deriv
		if math.IsNaN(newRate) || math.IsInf(newRate, 0) {
			return IRRResult{}, fmt.Errorf("%w: non-finite step from rate %g (iteration %d)", ErrZeroDerivative, rate, iter+1)
		}
		if newRate <= -1 {
			return IRRResult{}, fmt.Errorf("%w: iterate %g left the domain (iteration %d)", ErrInvalidRate, newRate, iter+1)
		}

		if math.Abs(newRate-rate) < machineEpsilon {
			return IRRResult{Rate: newRate, Iterations: iter + 1}, nil
		}
		rate = newRate
	}

	return IRRResult{}, &ConvergenceError{Iterations: opts.MaxIterations, LastRate: rate}
}

// irrObjective returns f(rate) and f'(rate) for the solver's zero-based convention.
func irrObjective(rate float64, cashFlows []float64) (float64, float64) {
	base := 1 + rate
	var value, deriv float64
	for t, cf := range cashFlows {
		denominator := math.Pow(base, float64(t))
		value += cf / denominator
		deriv -= float64(t) * cf / (denominator * base)
	}
	return value, deriv
}

func validateIRRInput(cashFlows []float64, opts IRROptions) error {
	if len(cashFlows) == 0 {
		return fmt.Errorf("%w: no cash flows", ErrEmptyInput)
	}
	if err := validateFlows(cashFlows); err != nil {
		return err
	}

	nonZero := false
	for _, cf := range cashFlows {
		if cf != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		return fmt.Errorf("%w: all %d cash flows are zero", ErrEmptyInput, len(cashFlows))
	}

	if opts.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations %d must be at least 1", ErrInvalidInput, opts.MaxIterations)
	}
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %v must be a positive number", ErrInvalidInput, opts.Tolerance)
	}

	return validateRate(opts.Guess)
}
