package backtest

import (
	"sort"

	"dcabench/internal/domain"

	"github.com/montanaflynn/stats"
)

// Aggregate recomputes cross-strategy statistics from the full result set.
// Strategies with no surviving windows are left out. Ranking is by mean
// return descending; ties keep the strategies' configured order.
func Aggregate(windows []WindowResult, strategies []domain.StrategyKind) *domain.ComparisonResult {
	comparison := &domain.ComparisonResult{}

	for _, kind := range strategies {
		returns := []float64{}
		annualized := []float64{}
		invested := []float64{}
		finalValues := []float64{}
		profitable := 0

		for _, window := range windows {
			result := window.Results[kind]
			if result == nil {
				continue
			}
			returns = append(returns, result.ReturnPct)
			annualized = append(annualized, result.AnnualizedReturnPct)
			invested = append(invested, result.TotalInvested)
			finalValues = append(finalValues, result.FinalValue)
			if result.ReturnPct > 0 {
				profitable++
			}
		}

		if len(returns) == 0 {
			continue
		}

		mean, _ := stats.Mean(returns)
		median, _ := stats.Median(returns)
		// Population stdev, matching how the batch has always been
		// summarized. StandardDeviation errors only on empty input,
		// which is excluded above.
		stdev, _ := stats.StandardDeviation(returns)
		minReturn, _ := stats.Min(returns)
		maxReturn, _ := stats.Max(returns)
		meanAnnualized, _ := stats.Mean(annualized)
		meanInvested, _ := stats.Mean(invested)
		meanFinalValue, _ := stats.Mean(finalValues)

		ratio := 0.0
		if stdev > 0 {
			ratio = mean / stdev
		}

		comparison.Summaries = append(comparison.Summaries, domain.StrategySummary{
			Strategy: kind,

			MeanReturnPct:   mean,
			MedianReturnPct: median,
			StdevReturnPct:  stdev,
			MinReturnPct:    minReturn,
			MaxReturnPct:    maxReturn,

			MeanAnnualizedReturnPct: meanAnnualized,
			MeanInvested:            meanInvested,
			MeanFinalValue:          meanFinalValue,

			ProfitableWindows: profitable,
			Windows:           len(returns),

			ReturnRiskRatio: ratio,
		})
	}

	sort.SliceStable(comparison.Summaries, func(i, j int) bool {
		return comparison.Summaries[i].MeanReturnPct > comparison.Summaries[j].MeanReturnPct
	})

	return comparison
}
