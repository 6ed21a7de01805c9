package backtest

import (
	"testing"

	"dcabench/internal/domain"
	"dcabench/internal/util"

	"github.com/stretchr/testify/require"
)

func windowWith(returns map[domain.StrategyKind]float64) WindowResult {
	window := WindowResult{
		StartDate: util.NewDate(2020, 1, 1),
		Results:   map[domain.StrategyKind]*domain.StrategyResult{},
	}
	for kind, returnPct := range returns {
		window.Results[kind] = &domain.StrategyResult{
			Strategy:            kind,
			ReturnPct:           returnPct,
			AnnualizedReturnPct: returnPct,
			TotalInvested:       100,
			FinalValue:          100 + returnPct,
		}
	}
	return window
}

func Test_Aggregate(t *testing.T) {
	daily := domain.StrategyDaily
	weekly := domain.StrategyWeeklyRandom
	monthly := domain.StrategyMonthlyRandom

	t.Run("summary statistics", func(t *testing.T) {
		windows := []WindowResult{
			windowWith(map[domain.StrategyKind]float64{daily: 10, weekly: 4}),
			windowWith(map[domain.StrategyKind]float64{daily: -10, weekly: 8}),
			windowWith(map[domain.StrategyKind]float64{daily: 30, weekly: 6}),
		}

		comparison := Aggregate(windows, []domain.StrategyKind{daily, weekly})
		require.Len(t, comparison.Summaries, 2)

		// daily: mean 10, weekly: mean 6 -> daily ranks first.
		first := comparison.Summaries[0]
		require.Equal(t, daily, first.Strategy)
		require.InDelta(t, 10.0, first.MeanReturnPct, 1e-9)
		require.InDelta(t, 10.0, first.MedianReturnPct, 1e-9)
		require.InDelta(t, -10.0, first.MinReturnPct, 1e-9)
		require.InDelta(t, 30.0, first.MaxReturnPct, 1e-9)
		// Population stdev of {10, -10, 30} is sqrt(800/3).
		require.InDelta(t, 16.32993161855452, first.StdevReturnPct, 1e-9)
		require.Equal(t, 2, first.ProfitableWindows)
		require.Equal(t, 3, first.Windows)
		require.InDelta(t, 10.0/16.32993161855452, first.ReturnRiskRatio, 1e-9)

		second := comparison.Summaries[1]
		require.Equal(t, weekly, second.Strategy)
		require.InDelta(t, 6.0, second.MeanReturnPct, 1e-9)
		require.Equal(t, 3, second.ProfitableWindows)
	})

	t.Run("identical returns define return/risk ratio as 0", func(t *testing.T) {
		windows := []WindowResult{
			windowWith(map[domain.StrategyKind]float64{daily: 5}),
			windowWith(map[domain.StrategyKind]float64{daily: 5}),
			windowWith(map[domain.StrategyKind]float64{daily: 5}),
		}

		comparison := Aggregate(windows, []domain.StrategyKind{daily})
		require.Len(t, comparison.Summaries, 1)
		require.InDelta(t, 0.0, comparison.Summaries[0].StdevReturnPct, 1e-9)
		require.Equal(t, 0.0, comparison.Summaries[0].ReturnRiskRatio)
	})

	t.Run("failed windows are excluded per strategy", func(t *testing.T) {
		windows := []WindowResult{
			windowWith(map[domain.StrategyKind]float64{daily: 10, weekly: 2}),
			{
				StartDate: util.NewDate(2020, 2, 1),
				Results: map[domain.StrategyKind]*domain.StrategyResult{
					daily:  {Strategy: daily, ReturnPct: 20},
					weekly: nil,
				},
			},
		}

		comparison := Aggregate(windows, []domain.StrategyKind{daily, weekly})
		require.Len(t, comparison.Summaries, 2)
		require.Equal(t, 2, comparison.Summaries[0].Windows)
		require.Equal(t, 1, comparison.Summaries[1].Windows)
	})

	t.Run("strategies with no results are omitted", func(t *testing.T) {
		windows := []WindowResult{
			windowWith(map[domain.StrategyKind]float64{daily: 10}),
		}
		comparison := Aggregate(windows, []domain.StrategyKind{daily, monthly})
		require.Len(t, comparison.Summaries, 1)
		require.Equal(t, daily, comparison.Summaries[0].Strategy)
	})

	t.Run("ties keep configured strategy order", func(t *testing.T) {
		windows := []WindowResult{
			windowWith(map[domain.StrategyKind]float64{weekly: 5, daily: 5, monthly: 5}),
		}
		comparison := Aggregate(windows, []domain.StrategyKind{weekly, daily, monthly})
		require.Equal(t, weekly, comparison.Summaries[0].Strategy)
		require.Equal(t, daily, comparison.Summaries[1].Strategy)
		require.Equal(t, monthly, comparison.Summaries[2].Strategy)
	})
}
