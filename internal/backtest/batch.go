package backtest

import (
	"errors"
	"math/rand"
	"time"

	"dcabench/internal/domain"
	"dcabench/internal/prices"

	"go.uber.org/zap"
)

// WindowResult holds one sampled window's results, one per strategy. A
// strategy whose run failed (empty window) has a nil entry and is skipped
// by aggregation.
type WindowResult struct {
	StartDate time.Time
	Results   map[domain.StrategyKind]*domain.StrategyResult
}

func (w WindowResult) Result(kind domain.StrategyKind) *domain.StrategyResult {
	return w.Results[kind]
}

// BestStrategy returns the strategy with the highest return in this
// window, ok=false when no strategy produced a result.
func (w WindowResult) BestStrategy() (domain.StrategyKind, bool) {
	best := domain.StrategyKind("")
	bestReturn := 0.0
	found := false
	for _, kind := range domain.AllStrategyKinds() {
		result, ok := w.Results[kind]
		if !ok || result == nil {
			continue
		}
		if !found || result.ReturnPct > bestReturn {
			best = kind
			bestReturn = result.ReturnPct
			found = true
		}
	}
	return best, found
}

type BatchInput struct {
	Series          *prices.Series
	Strategies      []domain.StrategyKind
	StartDates      []time.Time
	DurationDays    int
	DailyInvestment float64
	PriceField      domain.PriceField
	Instrument      string

	// Rng is the single seeded stream shared by every run in the batch;
	// strategies consume it sequentially in a fixed order, which is what
	// makes a batch reproducible from one seed.
	Rng *rand.Rand
	Log *zap.SugaredLogger
}

// RunBatch runs every configured strategy over every sampled window. A
// failed window is logged and excluded, never fatal to the batch.
func RunBatch(in BatchInput) []WindowResult {
	windows := make([]WindowResult, 0, len(in.StartDates))
	for i, startDate := range in.StartDates {
		window := WindowResult{
			StartDate: startDate,
			Results:   map[domain.StrategyKind]*domain.StrategyResult{},
		}
		for _, kind := range in.Strategies {
			result, err := Run(RunInput{
				Series:          in.Series,
				Strategy:        kind,
				StartDate:       startDate,
				DurationDays:    in.DurationDays,
				DailyInvestment: in.DailyInvestment,
				PriceField:      in.PriceField,
				Instrument:      in.Instrument,
				Rng:             in.Rng,
			})
			if err != nil {
				if in.Log != nil {
					var emptyErr *EmptyWindowError
					if errors.As(err, &emptyErr) {
						in.Log.Warnw("skipping empty window",
							"window", i+1,
							"strategy", kind.Name(),
							"start", startDate.Format(time.DateOnly),
						)
					} else {
						in.Log.Errorw("strategy run failed",
							"window", i+1,
							"strategy", kind.Name(),
							"error", err,
						)
					}
				}
				window.Results[kind] = nil
				continue
			}
			if in.Log != nil {
				in.Log.Infow("strategy run complete",
					"run_id", result.RunID,
					"window", i+1,
					"strategy", kind.Name(),
					"start", startDate.Format(time.DateOnly),
					"return_pct", result.ReturnPct,
				)
			}
			window.Results[kind] = result
		}
		windows = append(windows, window)
	}
	return windows
}
