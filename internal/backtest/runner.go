package backtest

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"dcabench/internal/domain"
	"dcabench/internal/ledger"
	"dcabench/internal/prices"
	"dcabench/internal/schedule"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

// EmptyWindowError reports a (window, instrument filter) combination with
// no price data at all. The run is abandoned and excluded from
// aggregation; a day with no tradable instruments inside a non-empty
// window is not this error, that is handled per event by the ledger.
type EmptyWindowError struct {
	Start      time.Time
	End        time.Time
	Instrument string
}

func (e *EmptyWindowError) Error() string {
	if e.Instrument != "" {
		return fmt.Sprintf("no price data for %s between %s and %s", e.Instrument, e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
	}
	return fmt.Sprintf("no price data between %s and %s", e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
}

type RunInput struct {
	Series          *prices.Series
	Strategy        domain.StrategyKind
	StartDate       time.Time
	DurationDays    int
	DailyInvestment float64
	PriceField      domain.PriceField
	Instrument      string
	Rng             *rand.Rand
}

// Run replays one strategy over one window: filter the data, schedule the
// investment events, execute them in date order, then value the final
// portfolio. The result is immutable once returned.
func Run(in RunInput) (*domain.StrategyResult, error) {
	endDate := in.StartDate.AddDate(0, 0, in.DurationDays)

	window := in.Series.Window(in.StartDate, endDate, in.Instrument)
	if window.Len() == 0 {
		return nil, &EmptyWindowError{Start: in.StartDate, End: endDate, Instrument: in.Instrument}
	}

	scheduler, err := schedule.New(in.Strategy, in.DailyInvestment)
	if err != nil {
		return nil, err
	}

	tradingDays := window.TradingDays()
	events := scheduler.Events(tradingDays, in.Rng)

	book := ledger.New(in.Strategy, in.PriceField, in.Instrument)
	for _, event := range events {
		book.Execute(window, event)
	}

	lastDay := tradingDays[len(tradingDays)-1]
	valuation := book.Finalize(window, lastDay)

	totalInvested := book.TotalInvested()
	totalReturn := valuation.TotalValue - totalInvested

	returnPct := 0.0
	if totalInvested > 0 {
		returnPct = totalReturn / totalInvested * 100
	}

	annualizedReturnPct := 0.0
	if totalInvested > 0 && in.DurationDays > 0 {
		annualizedReturnPct = (math.Pow(valuation.TotalValue/totalInvested, 365/float64(in.DurationDays)) - 1) * 100
	}

	trades := book.Trades()
	minPrice, maxPrice, avgPrice := tradePriceStats(trades)

	return &domain.StrategyResult{
		RunID:    uuid.New(),
		Strategy: in.Strategy,

		StartDate:     in.StartDate,
		EndDate:       endDate,
		ActualEndDate: lastDay,
		DurationDays:  in.DurationDays,
		TradingDays:   len(tradingDays),

		DailyInvestment: in.DailyInvestment,
		PriceField:      in.PriceField,
		Instrument:      in.Instrument,

		TotalInvested:       totalInvested,
		FinalValue:          valuation.TotalValue,
		TotalReturn:         totalReturn,
		ReturnPct:           returnPct,
		AnnualizedReturnPct: annualizedReturnPct,

		NumInstruments: book.NumPositions(),
		NumTrades:      len(trades),
		MinPriceBought: minPrice,
		MaxPriceBought: maxPrice,
		AvgPriceBought: avgPrice,

		FinalPositions: valuation.Positions,
		Trades:         trades,
	}, nil
}

// tradePriceStats summarizes executed buy prices. Prices <= 0 never reach
// the trade history, so no filtering is needed here; an empty history
// resolves to zeros.
func tradePriceStats(trades []domain.Trade) (min, max, avg float64) {
	if len(trades) == 0 {
		return 0, 0, 0
	}
	tradePrices := make([]float64, 0, len(trades))
	for _, trade := range trades {
		tradePrices = append(tradePrices, trade.Price)
	}

	min, _ = stats.Min(tradePrices)
	max, _ = stats.Max(tradePrices)
	avg, _ = stats.Mean(tradePrices)
	return min, max, avg
}
