package config

import (
	"os"
	"path/filepath"
	"testing"

	"dcabench/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_LoadFromFile(t *testing.T) {
	t.Run("overrides layered over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		contents := `
data_path: prices.csv
daily_investment: 2.5
duration_days: 730
price_field: open
instrument: AAPL
random_seed: 42
num_windows: 5
strategies:
  - daily
  - monthly_random
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		require.Equal(t, "prices.csv", cfg.DataPath)
		require.Equal(t, 2.5, cfg.DailyInvestment)
		require.Equal(t, 730, cfg.DurationDays)
		require.Equal(t, domain.PriceFieldOpen, cfg.Field())
		require.Equal(t, "AAPL", cfg.Instrument)
		require.Equal(t, int64(42), cfg.Seed())
		require.Equal(t, 5, cfg.NumWindows)

		kinds, err := cfg.StrategyKinds()
		require.NoError(t, err)
		require.Equal(t, []domain.StrategyKind{domain.StrategyDaily, domain.StrategyMonthlyRandom}, kinds)

		// Defaults still fill in what the file leaves out.
		require.Equal(t, "multi_strategy_report.md", cfg.OutputPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func Test_Validate(t *testing.T) {
	base := Default()

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base.Validate())
	})

	t.Run("rejects bad values", func(t *testing.T) {
		for name, mutate := range map[string]func(*Config){
			"zero investment":     func(c *Config) { c.DailyInvestment = 0 },
			"negative investment": func(c *Config) { c.DailyInvestment = -1 },
			"zero duration":       func(c *Config) { c.DurationDays = 0 },
			"zero windows":        func(c *Config) { c.NumWindows = 0 },
			"empty data path":     func(c *Config) { c.DataPath = "" },
			"bad price field":     func(c *Config) { c.PriceField = "vwap" },
			"bad strategy":        func(c *Config) { c.Strategies = []string{"hourly"} },
		} {
			t.Run(name, func(t *testing.T) {
				cfg := base
				mutate(&cfg)
				require.Error(t, cfg.Validate())
			})
		}
	})
}

func Test_Defaults(t *testing.T) {
	cfg := Default()

	kinds, err := cfg.StrategyKinds()
	require.NoError(t, err)
	require.Equal(t, domain.AllStrategyKinds(), kinds)

	// Unset seed falls back to a time-derived value.
	require.Nil(t, cfg.RandomSeed)
	require.NotZero(t, cfg.Seed())
}
