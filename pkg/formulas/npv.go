package formulas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// CalculateNPV calculates the Net Present Value of a cash-flow series.
//
// Formula:
//
//	NPV = Σ cf[t] / (1 + rate)^(t+1),  t = 0..N-1
//
// Every flow is treated as realised at the end of its period, so the first
// flow (usually the initial outlay) is discounted by one period as well.
// This is not the textbook convention and it differs from the objective the
// IRR solver iterates on (see SolveIRR). Both conventions share the same
// roots for rate > -1 because NPV(r) = f(r) / (1 + r).
//
// Args:
//
//	rate: Periodic discount rate as decimal (e.g., 0.1 = 10%)
//	cashFlows: Flows per period, index 0 first
//
// Returns:
//
//	NPV, or ErrInvalidRate when rate <= -1 or is not finite,
//	or ErrInvalidInput when a flow is not finite.
//	An empty series has an NPV of 0.
func CalculateNPV(rate float64, cashFlows []float64) (float64, error) {
	if err := validateRate(rate); err != nil {
		return 0, err
	}
	if err := validateFlows(cashFlows); err != nil {
		return 0, err
	}
	if len(cashFlows) == 0 {
		return 0, nil
	}

	base := 1 + rate
	terms := make([]float64, len(cashFlows))
	for t, cf := range cashFlows {
		terms[t] = cf / math.Pow(base, float64(t+1))
	}

	npv := floats.Sum(terms)
	if math.IsNaN(npv) || math.IsInf(npv, 0) {
		// The rate already passed validation, so the flows are too large
		return 0, fmt.Errorf("%w: npv overflowed at rate %g", ErrInvalidInput, rate)
	}

	return npv, nil
}

// validateRate applies the rate policy shared by the NPV evaluator and the IRR solver:
// a discount factor (1 + rate) must be strictly positive.
func validateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate %v is not finite", ErrInvalidRate, rate)
	}
	if rate <= -1 {
		return fmt.Errorf("%w: rate %g must be greater than -1", ErrInvalidRate, rate)
	}
	return nil
}

func validateFlows(cashFlows []float64) error {
	for i, cf := range cashFlows {
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			return fmt.Errorf("%w: cash flow %d is not finite", ErrInvalidInput, i)
		}
	}
	return nil
}
