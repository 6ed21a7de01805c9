package ingest

import (
	"fmt"
	"io"
	"os"
	"time"

	"dcabench/internal/domain"
	"dcabench/internal/prices"
	"dcabench/internal/util"

	"github.com/gocarina/gocsv"
)

// row mirrors the dataset header: one line per (date, instrument) pair.
// The instrument column is named "Name" in the S&P 500 daily dataset this
// tool was built around.
type row struct {
	Date       string  `csv:"date"`
	Open       float64 `csv:"open"`
	High       float64 `csv:"high"`
	Low        float64 `csv:"low"`
	Close      float64 `csv:"close"`
	Instrument string  `csv:"Name"`
}

// Load reads the price history CSV at path and returns it as an indexed
// series, sorted ascending by (date, instrument). Zero and negative
// prices are kept; the simulation layer decides what to do with them.
func Load(path string) (*prices.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price data: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func Read(r io.Reader) (*prices.Series, error) {
	rows := []row{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price data: %w", err)
	}

	records := make([]domain.PriceRecord, 0, len(rows))
	for i, rw := range rows {
		date, err := time.Parse(time.DateOnly, rw.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, rw.Date, err)
		}
		records = append(records, domain.PriceRecord{
			Date:       util.Day(date),
			Instrument: rw.Instrument,
			Open:       rw.Open,
			High:       rw.High,
			Low:        rw.Low,
			Close:      rw.Close,
		})
	}

	return prices.New(records), nil
}
