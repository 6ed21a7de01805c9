package domain

import (
	"fmt"
	"time"
)

// PriceField selects which quote column a simulation buys at.
type PriceField string

const (
	PriceFieldOpen  PriceField = "open"
	PriceFieldHigh  PriceField = "high"
	PriceFieldLow   PriceField = "low"
	PriceFieldClose PriceField = "close"
)

func ParsePriceField(s string) (PriceField, error) {
	switch PriceField(s) {
	case PriceFieldOpen, PriceFieldHigh, PriceFieldLow, PriceFieldClose:
		return PriceField(s), nil
	}
	return "", fmt.Errorf("unknown price field %q", s)
}

// PriceRecord is one (date, instrument) quote row. Records are loaded once
// and never mutated. Fields may be <= 0; those prices are unusable for
// buying but the record still counts as the instrument trading that day.
type PriceRecord struct {
	Date       time.Time
	Instrument string
	Open       float64
	High       float64
	Low        float64
	Close      float64
}

func (r PriceRecord) Price(field PriceField) float64 {
	switch field {
	case PriceFieldOpen:
		return r.Open
	case PriceFieldHigh:
		return r.High
	case PriceFieldLow:
		return r.Low
	default:
		return r.Close
	}
}
