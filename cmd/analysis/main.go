// Package main runs the example cash-flow analysis and prints the results.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/aristath/finanalysis/internal/config"
	"github.com/aristath/finanalysis/internal/modules/analysis"
	"github.com/aristath/finanalysis/pkg/logger"
)

// Example data: initial investment followed by yearly returns, and a price history
var (
	exampleCashFlows = []float64{-1000, 200, 300, 400, 500}
	examplePrices    = []float64{100, 102, 105, 110, 115, 120, 125}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: os.Stderr,
	})

	// Defaults match the example run: seed 0.1, 100 iterations, 1e-6 tolerance
	svc := analysis.NewService(cfg.IRR.Options(), log)

	run(os.Stdout, svc, log)
}

func run(out io.Writer, svc *analysis.Service, log zerolog.Logger) {
	summary := svc.Summary(analysis.SummaryRequest{
		NPV:  analysis.NPVRequest{Rate: 0.1, CashFlows: exampleCashFlows},
		IRR:  analysis.IRRRequest{CashFlows: exampleCashFlows},
		CAGR: analysis.CAGRRequest{InitialValue: 1000, FinalValue: 2000, Years: 5},
		SMA:  analysis.SMARequest{Prices: examplePrices, Period: 3},
	})

	if summary.NPV != nil {
		fmt.Fprintf(out, "Net Present Value (NPV): %.2f\n", summary.NPV.NPV)
	} else {
		fmt.Fprintf(out, "NPV calculation failed: %s\n", summary.Errors["npv"])
	}

	switch {
	case summary.IRR != nil && summary.IRR.Converged:
		fmt.Fprintf(out, "Internal Rate of Return (IRR): %.2f%%\n", summary.IRR.Rate*100)
	case summary.IRR != nil:
		fmt.Fprintln(out, "IRR calculation did not converge")
	default:
		fmt.Fprintf(out, "IRR calculation failed: %s\n", summary.Errors["irr"])
	}

	if summary.CAGR != nil {
		fmt.Fprintf(out, "Compound Annual Growth Rate (CAGR): %.2f%%\n", summary.CAGR.CAGR*100)
	} else {
		fmt.Fprintf(out, "CAGR calculation failed: %s\n", summary.Errors["cagr"])
	}

	if summary.SMA != nil {
		fmt.Fprintf(out, "Simple Moving Average (SMA) (3-period): %v\n", summary.SMA.Values)
	} else {
		fmt.Fprintf(out, "SMA calculation failed: %s\n", summary.Errors["sma"])
	}

	if len(summary.Errors) > 0 {
		log.Warn().Int("failed", len(summary.Errors)).Msg("Some calculations failed")
	}

	if summary.IRR != nil && !summary.IRR.Converged {
		log.Info().Str("reason", summary.Errors["irr"]).Msg("IRR left unresolved")
	}
}
