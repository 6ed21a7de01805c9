package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"dcabench/internal/backtest"
	"dcabench/internal/config"
	"dcabench/internal/ingest"
	"dcabench/internal/logger"
	"dcabench/internal/report"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dcabench",
	Short: "Compare dollar-cost-averaging cadences over historical price data",
}

var runFlags struct {
	configPath string
	dataPath   string
	outputPath string
	amount     float64
	duration   int
	field      string
	instrument string
	seed       int64
	windows    int
	strategies []string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the multi-strategy comparison and write the markdown report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.configPath, "config", "c", "", "path to YAML config file")
	runCmd.Flags().StringVar(&runFlags.dataPath, "data", "", "path to price history CSV")
	runCmd.Flags().StringVarP(&runFlags.outputPath, "output", "o", "", "path for the markdown report")
	runCmd.Flags().Float64Var(&runFlags.amount, "amount", 0, "daily investment amount")
	runCmd.Flags().IntVar(&runFlags.duration, "duration", 0, "window duration in days")
	runCmd.Flags().StringVar(&runFlags.field, "field", "", "price field to buy at (open|high|low|close)")
	runCmd.Flags().StringVar(&runFlags.instrument, "instrument", "", "restrict to one instrument")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0, "random seed (0 uses a time-derived seed)")
	runCmd.Flags().IntVar(&runFlags.windows, "windows", 0, "number of sampled windows")
	runCmd.Flags().StringSliceVar(&runFlags.strategies, "strategies", nil, "strategies to compare (daily,weekly_random,monthly_random)")

	rootCmd.AddCommand(runCmd)
}

// resolveConfig layers CLI flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if runFlags.configPath != "" {
		loaded, err := config.LoadFromFile(runFlags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if runFlags.dataPath != "" {
		cfg.DataPath = runFlags.dataPath
	}
	if runFlags.outputPath != "" {
		cfg.OutputPath = runFlags.outputPath
	}
	if runFlags.amount != 0 {
		cfg.DailyInvestment = runFlags.amount
	}
	if runFlags.duration != 0 {
		cfg.DurationDays = runFlags.duration
	}
	if runFlags.field != "" {
		cfg.PriceField = runFlags.field
	}
	if runFlags.instrument != "" {
		cfg.Instrument = runFlags.instrument
	}
	if cmd.Flags().Changed("seed") {
		seed := runFlags.seed
		cfg.RandomSeed = &seed
	}
	if runFlags.windows != 0 {
		cfg.NumWindows = runFlags.windows
	}
	if len(runFlags.strategies) != 0 {
		cfg.Strategies = runFlags.strategies
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	log := logger.New()
	defer log.Sync()

	series, err := ingest.Load(cfg.DataPath)
	if err != nil {
		return err
	}
	log.Infow("loaded price data",
		"records", series.Len(),
		"instruments", len(series.Instruments()),
	)

	strategies, err := cfg.StrategyKinds()
	if err != nil {
		return err
	}

	validStarts := backtest.ValidStartDates(series.TradingDays(), cfg.DurationDays)
	if len(validStarts) == 0 {
		return fmt.Errorf("no valid start dates for a %d-day window; try a shorter duration", cfg.DurationDays)
	}
	log.Infow("found valid start dates", "count", len(validStarts), "duration_days", cfg.DurationDays)

	seed := cfg.Seed()
	rng := rand.New(rand.NewSource(seed))

	startDates := backtest.SampleStartDates(validStarts, cfg.NumWindows, rng)

	fmt.Printf("Running %d windows with %d strategies each (seed %d)...\n", len(startDates), len(strategies), seed)

	windows := backtest.RunBatch(backtest.BatchInput{
		Series:          series,
		Strategies:      strategies,
		StartDates:      startDates,
		DurationDays:    cfg.DurationDays,
		DailyInvestment: cfg.DailyInvestment,
		PriceField:      cfg.Field(),
		Instrument:      cfg.Instrument,
		Rng:             rng,
		Log:             log,
	})

	for i, window := range windows {
		fmt.Printf("  [%2d/%d] %s:", i+1, len(windows), window.StartDate.Format(time.DateOnly))
		for _, kind := range strategies {
			result := window.Result(kind)
			if result == nil {
				fmt.Printf(" %s: N/A", kind.Name())
				continue
			}
			fmt.Printf(" %s: %+.2f%%", kind.Name(), result.ReturnPct)
		}
		fmt.Println()
	}

	comparison := backtest.Aggregate(windows, strategies)
	if len(comparison.Summaries) == 0 {
		return fmt.Errorf("no strategy produced results; nothing to report")
	}

	best := comparison.Summaries[0]
	fmt.Printf("\nBest strategy: %s with average return %+.2f%% across %d windows\n",
		best.Strategy.Name(), best.MeanReturnPct, best.Windows)

	content := report.RenderComparison(report.Params{
		NumWindows:      len(windows),
		DurationDays:    cfg.DurationDays,
		DailyInvestment: cfg.DailyInvestment,
		PriceField:      cfg.Field(),
		Instrument:      cfg.Instrument,
		Seed:            seed,
		GeneratedAt:     time.Now(),
	}, strategies, windows, comparison)

	if err := report.WriteFile(cfg.OutputPath, content); err != nil {
		return err
	}
	log.Infow("report written", "path", cfg.OutputPath)
	fmt.Printf("Report saved to %s\n", cfg.OutputPath)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
