package backtest

import (
	"math/rand"
	"sort"
	"time"
)

// ValidStartDates returns every trading day that leaves room for a full
// window: any date at or before latest − durationDays.
func ValidStartDates(tradingDays []time.Time, durationDays int) []time.Time {
	if len(tradingDays) == 0 {
		return nil
	}
	latestStart := tradingDays[len(tradingDays)-1].AddDate(0, 0, -durationDays)

	valid := []time.Time{}
	for _, day := range tradingDays {
		if !day.After(latestStart) {
			valid = append(valid, day)
		}
	}
	return valid
}

// SampleStartDates draws n start dates from valid: without replacement
// when there are enough distinct dates, with replacement otherwise. The
// sample is sorted chronologically for stable downstream ordering.
func SampleStartDates(valid []time.Time, n int, rng *rand.Rand) []time.Time {
	if len(valid) == 0 || n <= 0 {
		return nil
	}

	selected := make([]time.Time, 0, n)
	if len(valid) >= n {
		for _, i := range rng.Perm(len(valid))[:n] {
			selected = append(selected, valid[i])
		}
	} else {
		for i := 0; i < n; i++ {
			selected = append(selected, valid[rng.Intn(len(valid))])
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Before(selected[j])
	})
	return selected
}
