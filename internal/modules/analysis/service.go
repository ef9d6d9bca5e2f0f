// Package analysis applies the cash-flow formulas on behalf of callers,
// filling in configured solver defaults and logging every outcome.
package analysis

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/finanalysis/pkg/formulas"
)

// Service runs NPV, IRR, CAGR and SMA calculations
type Service struct {
	defaults formulas.IRROptions
	log      zerolog.Logger
}

// NewService creates a new analysis service.
// defaults are used for any solver field an IRRRequest leaves unset.
func NewService(defaults formulas.IRROptions, log zerolog.Logger) *Service {
	return &Service{
		defaults: defaults,
		log:      log.With().Str("service", "analysis").Logger(),
	}
}

// Defaults returns the solver defaults the service was built with
func (s *Service) Defaults() formulas.IRROptions {
	return s.defaults
}

// NPV calculates the net present value of req.CashFlows at req.Rate
func (s *Service) NPV(req NPVRequest) (*NPVResult, error) {
	npv, err := formulas.CalculateNPV(req.Rate, req.CashFlows)
	if err != nil {
		s.log.Warn().Err(err).Float64("rate", req.Rate).Int("periods", len(req.CashFlows)).Msg("NPV calculation rejected")
		return nil, fmt.Errorf("npv: %w", err)
	}

	result := &NPVResult{
		CalculationID: uuid.New().String(),
		NPV:           npv,
		Rate:          req.Rate,
		Periods:       len(req.CashFlows),
		Undiscounted:  formulas.Sum(req.CashFlows),
	}

	s.log.Debug().
		Str("calculation_id", result.CalculationID).
		Float64("rate", req.Rate).
		Float64("npv", npv).
		Msg("NPV calculated")

	return result, nil
}

// IRR solves for the internal rate of return of req.CashFlows.
//
// Non-convergence is not treated as a failure of the service: the returned
// result has Converged=false with the iteration count and last iterate, and
// the error wraps formulas.ErrDidNotConverge so callers can retry with a
// different seed or tolerance. Any other error returns a nil result.
func (s *Service) IRR(req IRRRequest) (*IRRResult, error) {
	opts := s.resolveOptions(req)

	result := &IRRResult{
		CalculationID: uuid.New().String(),
		Guess:         opts.Guess,
		MaxIterations: opts.MaxIterations,
		Tolerance:     opts.Tolerance,
	}

	solved, err := formulas.SolveIRR(req.CashFlows, opts)
	if err != nil {
		var convErr *formulas.ConvergenceError
		if errors.As(err, &convErr) {
			result.Rate = convErr.LastRate
			result.Iterations = convErr.Iterations
			s.log.Info().
				Str("calculation_id", result.CalculationID).
				Int("iterations", convErr.Iterations).
				Float64("last_rate", convErr.LastRate).
				Float64("guess", opts.Guess).
				Msg("IRR did not converge")
			return result, fmt.Errorf("irr: %w", err)
		}

		s.log.Warn().Err(err).Int("periods", len(req.CashFlows)).Float64("guess", opts.Guess).Msg("IRR calculation rejected")
		return nil, fmt.Errorf("irr: %w", err)
	}

	result.Rate = solved.Rate
	result.Iterations = solved.Iterations
	result.Converged = true

	s.log.Debug().
		Str("calculation_id", result.CalculationID).
		Float64("rate", solved.Rate).
		Int("iterations", solved.Iterations).
		Msg("IRR converged")

	return result, nil
}

// CAGR calculates the compound annual growth rate between two values
func (s *Service) CAGR(req CAGRRequest) (*CAGRResult, error) {
	cagr, err := formulas.CalculateCAGR(req.InitialValue, req.FinalValue, req.Years)
	if err != nil {
		s.log.Warn().Err(err).
			Float64("initial_value", req.InitialValue).
			Float64("final_value", req.FinalValue).
			Float64("years", req.Years).
			Msg("CAGR calculation rejected")
		return nil, fmt.Errorf("cagr: %w", err)
	}

	result := &CAGRResult{
		CalculationID: uuid.New().String(),
		CAGR:          cagr,
	}

	s.log.Debug().Str("calculation_id", result.CalculationID).Float64("cagr", cagr).Msg("CAGR calculated")

	return result, nil
}

// CAGRFromMonthlyPrices calculates the CAGR over the trailing req.Months of a
// monthly price history
func (s *Service) CAGRFromMonthlyPrices(req MonthlyCAGRRequest) (*MonthlyCAGRResult, error) {
	cagr, err := formulas.CalculateCAGRFromMonthlyPrices(req.Prices, req.Months)
	if err != nil {
		s.log.Warn().Err(err).
			Int("months", req.Months).
			Int("prices", len(req.Prices)).
			Msg("Monthly CAGR calculation rejected")
		return nil, fmt.Errorf("cagr: %w", err)
	}

	used := min(req.Months, len(req.Prices))
	window := req.Prices[len(req.Prices)-used:]

	result := &MonthlyCAGRResult{
		CalculationID: uuid.New().String(),
		CAGR:          cagr,
		MonthsUsed:    used,
		From:          window[0].YearMonth,
		To:            window[len(window)-1].YearMonth,
	}

	s.log.Debug().
		Str("calculation_id", result.CalculationID).
		Int("months_used", used).
		Float64("cagr", cagr).
		Msg("Monthly CAGR calculated")

	return result, nil
}

// SMA calculates the simple moving average series of req.Prices
func (s *Service) SMA(req SMARequest) (*SMAResult, error) {
	values, err := formulas.CalculateSMA(req.Prices, req.Period)
	if err != nil {
		s.log.Warn().Err(err).Int("period", req.Period).Int("prices", len(req.Prices)).Msg("SMA calculation rejected")
		return nil, fmt.Errorf("sma: %w", err)
	}
	latest, err := formulas.LatestSMA(req.Prices, req.Period)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}

	result := &SMAResult{
		CalculationID: uuid.New().String(),
		Period:        req.Period,
		Values:        values,
		Latest:        latest,
	}

	s.log.Debug().
		Str("calculation_id", result.CalculationID).
		Int("period", req.Period).
		Int("values", len(values)).
		Msg("SMA calculated")

	return result, nil
}

// Summary runs all four calculations. A failing calculation does not stop
// the others; its error message is recorded under its name.
func (s *Service) Summary(req SummaryRequest) *SummaryResult {
	summary := &SummaryResult{}
	failed := make(map[string]string)

	if res, err := s.NPV(req.NPV); err != nil {
		failed["npv"] = err.Error()
	} else {
		summary.NPV = res
	}

	res, err := s.IRR(req.IRR)
	if err != nil {
		failed["irr"] = err.Error()
	}
	// A non-converged solve still reports its iterations
	summary.IRR = res

	if res, err := s.CAGR(req.CAGR); err != nil {
		failed["cagr"] = err.Error()
	} else {
		summary.CAGR = res
	}

	if res, err := s.SMA(req.SMA); err != nil {
		failed["sma"] = err.Error()
	} else {
		summary.SMA = res
	}

	if len(failed) > 0 {
		summary.Errors = failed
	}

	return summary
}

func (s *Service) resolveOptions(req IRRRequest) formulas.IRROptions {
	opts := s.defaults
	if req.Guess != nil {
		opts.Guess = *req.Guess
	}
	if req.MaxIterations != 0 {
		opts.MaxIterations = req.MaxIterations
	}
	if req.Tolerance != 0 {
		opts.Tolerance = req.Tolerance
	}
	return opts
}
