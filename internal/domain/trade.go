package domain

import "time"

// Trade is one executed leg of an investment event. Trades are appended to
// a ledger's history in date order and never mutated or removed.
type Trade struct {
	Date       time.Time
	Instrument string
	Price      float64
	Shares     float64
	Investment float64
	Strategy   StrategyKind

	// Cadence metadata. Bucket is empty for the daily strategy; for the
	// random cadences it names the (year, week) or (year, month) bucket
	// the event was drawn from, and BucketTradingDays is how many trading
	// days that bucket held.
	Bucket            string
	BucketTradingDays int
}

// Position accumulates buys of one instrument over one run. Shares and
// CostBasis only grow; no sells are modeled. TradePrices holds every
// executed buy price in order, for min/max/avg statistics.
type Position struct {
	Instrument  string
	Shares      float64
	CostBasis   float64
	TradePrices []float64
}

// AvgBuyPrice is the running weighted-average purchase price,
// 0 when nothing has been bought.
func (p Position) AvgBuyPrice() float64 {
	if p.Shares <= 0 {
		return 0
	}
	return p.CostBasis / p.Shares
}
