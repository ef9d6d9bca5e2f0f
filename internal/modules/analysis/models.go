package analysis

import "github.com/aristath/finanalysis/pkg/formulas"

// NPVRequest asks for the net present value of a cash-flow series
type NPVRequest struct {
	Rate      float64   `json:"rate"`
	CashFlows []float64 `json:"cash_flows"`
}

// NPVResult is the outcome of an NPV calculation
type NPVResult struct {
	CalculationID string  `json:"calculation_id"`
	NPV           float64 `json:"npv"`
	Rate          float64 `json:"rate"`
	Periods       int     `json:"periods"`
	Undiscounted  float64 `json:"undiscounted_total"`
}

// IRRRequest asks for the internal rate of return of a cash-flow series.
// Unset solver fields fall back to the service defaults; Guess is a pointer
// because 0 is a legitimate seed.
type IRRRequest struct {
	CashFlows     []float64 `json:"cash_flows"`
	Guess         *float64  `json:"guess,omitempty"`
	MaxIterations int       `json:"max_iterations,omitempty"`
	Tolerance     float64   `json:"tolerance,omitempty"`
}

// IRRResult is the outcome of an IRR solve. When Converged is false, Rate is
// the last iterate and the accompanying error wraps formulas.ErrDidNotConverge.
type IRRResult struct {
	CalculationID string  `json:"calculation_id"`
	Rate          float64 `json:"rate"`
	Converged     bool    `json:"converged"`
	Iterations    int     `json:"iterations"`
	Guess         float64 `json:"guess"`
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
}

// CAGRRequest asks for the compound annual growth rate between two values
type CAGRRequest struct {
	InitialValue float64 `json:"initial_value"`
	FinalValue   float64 `json:"final_value"`
	Years        float64 `json:"years"`
}

// CAGRResult is the outcome of a CAGR calculation
type CAGRResult struct {
	CalculationID string  `json:"calculation_id"`
	CAGR          float64 `json:"cagr"`
}

// MonthlyCAGRRequest asks for the CAGR over the trailing Months of a monthly
// price history, oldest first
type MonthlyCAGRRequest struct {
	Prices []formulas.MonthlyPrice `json:"prices"`
	Months int                     `json:"months"`
}

// MonthlyCAGRResult is the outcome of a monthly-history CAGR calculation.
// MonthsUsed is below the requested months when the history is shorter.
type MonthlyCAGRResult struct {
	CalculationID string  `json:"calculation_id"`
	CAGR          float64 `json:"cagr"`
	MonthsUsed    int     `json:"months_used"`
	From          string  `json:"from"`
	To            string  `json:"to"`
}

// SMARequest asks for the simple moving average of a price series
type SMARequest struct {
	Prices []float64 `json:"prices"`
	Period int       `json:"period"`
}

// SMAResult is the outcome of an SMA calculation
type SMAResult struct {
	CalculationID string    `json:"calculation_id"`
	Period        int       `json:"period"`
	Values        []float64 `json:"values"`
	Latest        float64   `json:"latest"`
}

// SummaryRequest bundles the inputs of all four calculations
type SummaryRequest struct {
	NPV  NPVRequest  `json:"npv"`
	IRR  IRRRequest  `json:"irr"`
	CAGR CAGRRequest `json:"cagr"`
	SMA  SMARequest  `json:"sma"`
}

// SummaryResult holds whichever calculations succeeded plus the
// error message of each one that did not
type SummaryResult struct {
	NPV    *NPVResult        `json:"npv,omitempty"`
	IRR    *IRRResult        `json:"irr,omitempty"`
	CAGR   *CAGRResult       `json:"cagr,omitempty"`
	SMA    *SMAResult        `json:"sma,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}
