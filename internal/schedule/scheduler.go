package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"dcabench/internal/domain"
)

// Event is one scheduled investment: invest Amount on Date. For the
// random cadences, Bucket names the week/month the event was drawn from
// and BucketDays is how many trading days that bucket held.
type Event struct {
	Date       time.Time
	Amount     float64
	Bucket     string
	BucketDays int
}

// Scheduler decides which trading days receive investment and how much.
// Implementations draw from the caller's rand source and never reseed, so
// a whole batch stays reproducible from one external seed.
type Scheduler interface {
	Kind() domain.StrategyKind
	Events(tradingDays []time.Time, rng *rand.Rand) []Event
}

func New(kind domain.StrategyKind, dailyAmount float64) (Scheduler, error) {
	switch kind {
	case domain.StrategyDaily:
		return dailyScheduler{amount: dailyAmount}, nil
	case domain.StrategyWeeklyRandom:
		return bucketScheduler{
			kind:      kind,
			amount:    dailyAmount,
			bucketKey: weekKey,
		}, nil
	case domain.StrategyMonthlyRandom:
		return bucketScheduler{
			kind:      kind,
			amount:    dailyAmount,
			bucketKey: monthKey,
		}, nil
	}
	return nil, fmt.Errorf("no scheduler for strategy %q", kind)
}

type dailyScheduler struct {
	amount float64
}

func (s dailyScheduler) Kind() domain.StrategyKind {
	return domain.StrategyDaily
}

func (s dailyScheduler) Events(tradingDays []time.Time, _ *rand.Rand) []Event {
	events := make([]Event, 0, len(tradingDays))
	for _, day := range tradingDays {
		events = append(events, Event{Date: day, Amount: s.amount})
	}
	return events
}

// bucketScheduler implements both random cadences: partition the window's
// trading days into buckets, then emit one event per bucket on a uniformly
// random day, scaled so the nominal total matches what the daily strategy
// would have invested over the same days.
type bucketScheduler struct {
	kind      domain.StrategyKind
	amount    float64
	bucketKey func(time.Time) string
}

func (s bucketScheduler) Kind() domain.StrategyKind {
	return s.kind
}

func (s bucketScheduler) Events(tradingDays []time.Time, rng *rand.Rand) []Event {
	// Buckets keep chronological first-seen order so the sequence of
	// random draws is identical from run to run.
	order := []string{}
	buckets := map[string][]time.Time{}
	for _, day := range tradingDays {
		key := s.bucketKey(day)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], day)
	}

	events := make([]Event, 0, len(order))
	for _, key := range order {
		days := buckets[key]
		events = append(events, Event{
			Date:       days[rng.Intn(len(days))],
			Amount:     s.amount * float64(len(days)),
			Bucket:     key,
			BucketDays: len(days),
		})
	}
	return events
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
