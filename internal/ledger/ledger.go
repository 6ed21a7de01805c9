package ledger

import (
	"sort"
	"time"

	"dcabench/internal/domain"
	"dcabench/internal/prices"
	"dcabench/internal/schedule"
)

// Ledger accumulates one run's positions and trade history. Each run owns
// exactly one Ledger; nothing is shared across runs and nothing survives
// past the StrategyResult built from it.
type Ledger struct {
	strategy   domain.StrategyKind
	field      domain.PriceField
	instrument string // non-empty routes every event to one instrument

	positions map[string]*domain.Position
	trades    []domain.Trade
}

func New(strategy domain.StrategyKind, field domain.PriceField, instrument string) *Ledger {
	return &Ledger{
		strategy:   strategy,
		field:      field,
		instrument: instrument,
		positions:  map[string]*domain.Position{},
	}
}

// Execute applies one investment event against the series.
//
// In single-instrument mode the full amount goes to that instrument; if it
// has no record on the event date the event is a no-op and the funds are
// not carried forward, so the executed total can undershoot the nominal
// schedule.
//
// In index mode the amount splits equally across the window's instrument
// universe. A leg whose instrument has no record that day, or whose price
// is <= 0, is skipped and its share of funds is lost, never redistributed
// to the instruments that did trade. This keeps each instrument's funding
// independent of data gaps elsewhere in the universe.
func (l *Ledger) Execute(series *prices.Series, event schedule.Event) {
	if l.instrument != "" {
		record, ok := series.RecordOn(event.Date, l.instrument)
		if !ok {
			return
		}
		l.buy(record, event, event.Amount)
		return
	}

	universe := series.Instruments()
	if len(universe) == 0 {
		return
	}
	perInstrument := event.Amount / float64(len(universe))
	for _, instrument := range universe {
		record, ok := series.RecordOn(event.Date, instrument)
		if !ok {
			continue
		}
		l.buy(record, event, perInstrument)
	}
}

func (l *Ledger) buy(record domain.PriceRecord, event schedule.Event, amount float64) {
	price := record.Price(l.field)
	if price <= 0 {
		return
	}

	shares := amount / price

	position, ok := l.positions[record.Instrument]
	if !ok {
		position = &domain.Position{Instrument: record.Instrument}
		l.positions[record.Instrument] = position
	}
	position.Shares += shares
	position.CostBasis += amount
	position.TradePrices = append(position.TradePrices, price)

	l.trades = append(l.trades, domain.Trade{
		Date:              event.Date,
		Instrument:        record.Instrument,
		Price:             price,
		Shares:            shares,
		Investment:        amount,
		Strategy:          l.strategy,
		Bucket:            event.Bucket,
		BucketTradingDays: event.BucketDays,
	})
}

// Trades returns the append-only trade history, in execution order.
func (l *Ledger) Trades() []domain.Trade {
	return l.trades
}

func (l *Ledger) NumPositions() int {
	return len(l.positions)
}

// TotalInvested sums what was actually executed, which is the number the
// return computation uses, not the nominal schedule total.
func (l *Ledger) TotalInvested() float64 {
	total := 0.0
	for _, trade := range l.trades {
		total += trade.Investment
	}
	return total
}

// Valuation is the mark-to-market view of the ledger at the end of a
// window.
type Valuation struct {
	TotalValue float64

	// Positions is ranked by ReturnPct descending.
	Positions []domain.PositionSummary
}

// Finalize values every position at the window's last trading day. An
// instrument without a record on that day falls back to its most recent
// price within the window series; if the series has no price at all for
// it the position contributes 0 to final value. Cost basis of 0 yields a
// return of 0 rather than a division by zero.
func (l *Ledger) Finalize(series *prices.Series, lastDay time.Time) Valuation {
	instruments := make([]string, 0, len(l.positions))
	for instrument := range l.positions {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)

	valuation := Valuation{}
	for _, instrument := range instruments {
		position := l.positions[instrument]

		finalPrice, ok := series.PriceOn(lastDay, instrument, l.field)
		if !ok {
			finalPrice, ok = series.LastKnownPrice(instrument, lastDay, l.field)
			if !ok {
				finalPrice = 0
			}
		}

		positionValue := position.Shares * finalPrice
		valuation.TotalValue += positionValue

		returnPct := 0.0
		if position.CostBasis > 0 {
			returnPct = (positionValue/position.CostBasis - 1) * 100
		}

		minPrice, maxPrice := 0.0, 0.0
		for i, price := range position.TradePrices {
			if i == 0 || price < minPrice {
				minPrice = price
			}
			if i == 0 || price > maxPrice {
				maxPrice = price
			}
		}

		valuation.Positions = append(valuation.Positions, domain.PositionSummary{
			Instrument:  instrument,
			Shares:      position.Shares,
			CostBasis:   position.CostBasis,
			FinalPrice:  finalPrice,
			FinalValue:  positionValue,
			AvgBuyPrice: position.AvgBuyPrice(),
			ReturnPct:   returnPct,
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
		})
	}

	sort.SliceStable(valuation.Positions, func(i, j int) bool {
		return valuation.Positions[i].ReturnPct > valuation.Positions[j].ReturnPct
	})

	return valuation
}
