package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"dcabench/internal/backtest"
	"dcabench/internal/domain"

	"github.com/shopspring/decimal"
)

// Params carries the experiment settings echoed at the top of the report.
type Params struct {
	NumWindows      int
	DurationDays    int
	DailyInvestment float64
	PriceField      domain.PriceField
	Instrument      string
	Seed            int64
	GeneratedAt     time.Time
}

// RenderComparison formats the full multi-strategy markdown report:
// parameters, ranked strategy summaries, per-strategy detail tables, and
// the per-window results grid.
func RenderComparison(params Params, strategies []domain.StrategyKind, windows []backtest.WindowResult, comparison *domain.ComparisonResult) string {
	var b strings.Builder

	b.WriteString("# Multi-Strategy Dollar Cost Averaging Report\n\n")
	fmt.Fprintf(&b, "*Generated on: %s*\n\n", params.GeneratedAt.Format("2006-01-02 15:04:05"))

	writeParams(&b, params)
	writeSummaryTable(&b, comparison)
	writeStrategyDetails(&b, comparison)
	writeWindowTable(&b, strategies, windows)
	writeKeyInsights(&b, comparison)

	b.WriteString("---\n")
	b.WriteString("*This is a simulation for educational purposes only. Past performance does not guarantee future results.*\n")
	return b.String()
}

// WriteFile writes a rendered report to path.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeParams(b *strings.Builder, params Params) {
	instruments := "All instruments"
	if params.Instrument != "" {
		instruments = params.Instrument
	}

	b.WriteString("## Experiment Parameters\n\n")
	b.WriteString("| Parameter | Value |\n")
	b.WriteString("|-----------|-------|\n")
	fmt.Fprintf(b, "| Number of Windows | %d |\n", params.NumWindows)
	fmt.Fprintf(b, "| Duration per Window | %d days |\n", params.DurationDays)
	fmt.Fprintf(b, "| Daily Investment | %s |\n", money(params.DailyInvestment))
	fmt.Fprintf(b, "| Price Field Used | %s |\n", params.PriceField)
	fmt.Fprintf(b, "| Instrument(s) | %s |\n", instruments)
	fmt.Fprintf(b, "| Random Seed | %d |\n", params.Seed)
	b.WriteString("\n")
}

func writeSummaryTable(b *strings.Builder, comparison *domain.ComparisonResult) {
	b.WriteString("## Strategy Performance Summary\n\n")
	b.WriteString("| Rank | Strategy | Avg Return | Median | Best | Worst | Std Dev | Success Rate | Return/Risk |\n")
	b.WriteString("|------|----------|------------|--------|------|-------|---------|--------------|-------------|\n")
	for i, s := range comparison.Summaries {
		fmt.Fprintf(b, "| %d | **%s** | **%s** | %s | %s | %s | %.2f%% | %.1f%% | %.2f |\n",
			i+1,
			s.Strategy.Name(),
			pct(s.MeanReturnPct),
			pct(s.MedianReturnPct),
			pct(s.MaxReturnPct),
			pct(s.MinReturnPct),
			s.StdevReturnPct,
			s.SuccessRate(),
			s.ReturnRiskRatio,
		)
	}
	b.WriteString("\n")
}

func writeStrategyDetails(b *strings.Builder, comparison *domain.ComparisonResult) {
	b.WriteString("## Detailed Strategy Analysis\n\n")
	for _, s := range comparison.Summaries {
		fmt.Fprintf(b, "### %s\n\n", s.Strategy.Name())
		fmt.Fprintf(b, "%s.\n\n", s.Strategy.Description())
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		fmt.Fprintf(b, "| Average Return | %s |\n", pct(s.MeanReturnPct))
		fmt.Fprintf(b, "| Median Return | %s |\n", pct(s.MedianReturnPct))
		fmt.Fprintf(b, "| Average Annualized Return | %s |\n", pct(s.MeanAnnualizedReturnPct))
		fmt.Fprintf(b, "| Standard Deviation | %.2f%% |\n", s.StdevReturnPct)
		fmt.Fprintf(b, "| Best Window | %s |\n", pct(s.MaxReturnPct))
		fmt.Fprintf(b, "| Worst Window | %s |\n", pct(s.MinReturnPct))
		fmt.Fprintf(b, "| Success Rate | %.1f%% (%d/%d) |\n", s.SuccessRate(), s.ProfitableWindows, s.Windows)
		fmt.Fprintf(b, "| Average Invested | %s |\n", money(s.MeanInvested))
		fmt.Fprintf(b, "| Average Final Value | %s |\n", money(s.MeanFinalValue))
		fmt.Fprintf(b, "| Return/Risk Ratio | %.3f |\n", s.ReturnRiskRatio)
		b.WriteString("\n")
	}
}

func writeWindowTable(b *strings.Builder, strategies []domain.StrategyKind, windows []backtest.WindowResult) {
	b.WriteString("## Individual Window Results\n\n")

	b.WriteString("| # | Start Date |")
	for _, kind := range strategies {
		fmt.Fprintf(b, " %s |", kind.Name())
	}
	b.WriteString(" Best Strategy |\n")

	b.WriteString("|---|------------|")
	for range strategies {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")

	for i, window := range windows {
		fmt.Fprintf(b, "| %d | %s |", i+1, window.StartDate.Format(time.DateOnly))
		for _, kind := range strategies {
			result := window.Result(kind)
			if result == nil {
				b.WriteString(" N/A |")
				continue
			}
			fmt.Fprintf(b, " %s |", pct(result.ReturnPct))
		}

		best, ok := window.BestStrategy()
		if !ok {
			b.WriteString(" N/A |\n")
			continue
		}
		fmt.Fprintf(b, " %s (%s) |\n", best.Name(), pct(window.Result(best).ReturnPct))
	}
	b.WriteString("\n")
}

func writeKeyInsights(b *strings.Builder, comparison *domain.ComparisonResult) {
	if len(comparison.Summaries) == 0 {
		return
	}

	best := comparison.Summaries[0]
	mostConsistent := comparison.Summaries[0]
	highestSuccess := comparison.Summaries[0]
	minMean, maxMean := best.MeanReturnPct, best.MeanReturnPct
	for _, s := range comparison.Summaries[1:] {
		if s.StdevReturnPct < mostConsistent.StdevReturnPct {
			mostConsistent = s
		}
		if s.SuccessRate() > highestSuccess.SuccessRate() {
			highestSuccess = s
		}
		if s.MeanReturnPct < minMean {
			minMean = s.MeanReturnPct
		}
		if s.MeanReturnPct > maxMean {
			maxMean = s.MeanReturnPct
		}
	}

	b.WriteString("## Key Insights\n\n")
	fmt.Fprintf(b, "- **Best Strategy**: %s with an average return of %s\n",
		best.Strategy.Name(), pct(best.MeanReturnPct))
	fmt.Fprintf(b, "- **Most Consistent**: %s with a standard deviation of %.2f%%\n",
		mostConsistent.Strategy.Name(), mostConsistent.StdevReturnPct)
	fmt.Fprintf(b, "- **Highest Success Rate**: %s at %.1f%% (%d/%d profitable windows)\n",
		highestSuccess.Strategy.Name(), highestSuccess.SuccessRate(),
		highestSuccess.ProfitableWindows, highestSuccess.Windows)

	timingDiff := maxMean - minMean
	if timingDiff < 1 {
		fmt.Fprintf(b, "- **Timing Impact**: Minimal difference (%.2f%%) between strategies suggests timing within periods has low impact\n", timingDiff)
	} else {
		fmt.Fprintf(b, "- **Timing Impact**: Notable difference (%.2f%%) between strategies suggests timing can matter\n", timingDiff)
	}
	b.WriteString("- **Risk vs Return**: Consider both return and consistency when choosing a strategy\n")
	b.WriteString("\n")
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func pct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
