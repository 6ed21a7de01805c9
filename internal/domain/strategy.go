package domain

import "fmt"

// StrategyKind tags one of the supported investment cadences.
type StrategyKind string

const (
	StrategyDaily         StrategyKind = "daily"
	StrategyWeeklyRandom  StrategyKind = "weekly_random"
	StrategyMonthlyRandom StrategyKind = "monthly_random"
)

func ParseStrategyKind(s string) (StrategyKind, error) {
	switch StrategyKind(s) {
	case StrategyDaily, StrategyWeeklyRandom, StrategyMonthlyRandom:
		return StrategyKind(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

func AllStrategyKinds() []StrategyKind {
	return []StrategyKind{StrategyDaily, StrategyWeeklyRandom, StrategyMonthlyRandom}
}

func (k StrategyKind) Name() string {
	switch k {
	case StrategyDaily:
		return "Daily"
	case StrategyWeeklyRandom:
		return "Weekly Random"
	case StrategyMonthlyRandom:
		return "Monthly Random"
	}
	return string(k)
}

func (k StrategyKind) Description() string {
	switch k {
	case StrategyDaily:
		return "Invests fixed amount every trading day"
	case StrategyWeeklyRandom:
		return "Invests weekly amount on one random day per week"
	case StrategyMonthlyRandom:
		return "Invests monthly amount on one random day per month"
	}
	return ""
}
