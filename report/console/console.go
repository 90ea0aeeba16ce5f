// Package console renders run reports as plain text, the default reporting
// sink for the command line front end
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/wattsup/stonks/common/math"
	"github.com/wattsup/stonks/report"
)

// Renderer implements report.Handler over an io.Writer
type Renderer struct {
	Output io.Writer
}

// New returns a renderer writing to stdout
func New() *Renderer {
	return &Renderer{Output: os.Stdout}
}

// Write implements the report.Handler interface
func (r *Renderer) Write(rep *report.Report) error {
	if rep == nil {
		return report.ErrNilReport
	}
	w := r.Output
	if w == nil {
		w = os.Stdout
	}
	closing := 0.0
	if len(rep.ClosingValues) > 0 {
		closing = rep.ClosingValues[len(rep.ClosingValues)-1]
	}
	fmt.Fprintf(w, "Strategy:        %v", rep.StrategyName)
	if rep.TestCase != "" {
		fmt.Fprintf(w, " %v", rep.TestCase)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test duration:   %v\n", rep.Duration)
	fmt.Fprintf(w, "Sessions:        %11d\n", rep.Sessions)
	fmt.Fprintf(w, "Sharpe ratio:    %11.3f\n", rep.SharpeRatio)
	fmt.Fprintf(w, "Sortino ratio:   %11.3f\n", rep.SortinoRatio)
	fmt.Fprintf(w, "Closing value:  $%10.2f\n", closing)
	if len(rep.ClosingValues) > 1 && rep.ClosingValues[0] != 0 {
		fmt.Fprintf(w, "Value change:    %10.2f%%\n",
			math.CalculatePercentageGainOrLoss(closing, rep.ClosingValues[0]))
	}
	fmt.Fprintf(w, "Closing profit: $%10.2f = %.2f%% = %.2f%%(yr)\n",
		rep.TotalProfit.InexactFloat64(),
		rep.ProfitPercent*100,
		rep.AnnualisedProfitPercent*100)
	return nil
}
