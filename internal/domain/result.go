package domain

import (
	"time"

	"github.com/google/uuid"
)

// PositionSummary is the end-of-window snapshot of one position, valued at
// the resolved final price.
type PositionSummary struct {
	Instrument  string
	Shares      float64
	CostBasis   float64
	FinalPrice  float64
	FinalValue  float64
	AvgBuyPrice float64
	ReturnPct   float64
	MinPrice    float64
	MaxPrice    float64
}

// StrategyResult summarizes one (strategy, window) simulation. It is built
// once when the run finalizes and is immutable afterwards.
type StrategyResult struct {
	RunID    uuid.UUID
	Strategy StrategyKind

	StartDate     time.Time
	EndDate       time.Time
	ActualEndDate time.Time
	DurationDays  int
	TradingDays   int

	DailyInvestment float64
	PriceField      PriceField
	Instrument      string

	TotalInvested       float64
	FinalValue          float64
	TotalReturn         float64
	ReturnPct           float64
	AnnualizedReturnPct float64

	NumInstruments int
	NumTrades      int
	MinPriceBought float64
	MaxPriceBought float64
	AvgPriceBought float64

	// FinalPositions is ranked by ReturnPct descending.
	FinalPositions []PositionSummary
	Trades         []Trade
}

// StrategySummary aggregates one strategy's results across every sampled
// window that produced a result.
type StrategySummary struct {
	Strategy StrategyKind

	MeanReturnPct   float64
	MedianReturnPct float64
	StdevReturnPct  float64
	MinReturnPct    float64
	MaxReturnPct    float64

	MeanAnnualizedReturnPct float64
	MeanInvested            float64
	MeanFinalValue          float64

	ProfitableWindows int
	Windows           int

	// ReturnRiskRatio is MeanReturnPct / StdevReturnPct, 0 when the
	// stdev is 0.
	ReturnRiskRatio float64
}

func (s StrategySummary) SuccessRate() float64 {
	if s.Windows == 0 {
		return 0
	}
	return float64(s.ProfitableWindows) / float64(s.Windows) * 100
}

// ComparisonResult ranks the per-strategy summaries by mean return,
// descending, with ties left in strategy insertion order. It is recomputed
// from the full result set, never updated incrementally.
type ComparisonResult struct {
	Summaries []StrategySummary
}
