package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ImpulseSystem/internal/collector"
	"ImpulseSystem/internal/config"
	"ImpulseSystem/internal/metrics"
	"ImpulseSystem/internal/model"
	"ImpulseSystem/internal/scheduler"
	"ImpulseSystem/internal/strategy"
)

// Version is the release string printed by `impulse version`.
const Version = "v0.3.0"

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:   "impulse",
		Short: "Impulse System - EMA/MACD impulse and oscillator analysis",
		Long: `impulse classifies every bar of a price history as bullish, bearish or neutral from
the slopes of a short EMA and the MACD histogram, and pairs it with an RSI or
stochastic oscillator reading.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd(&cfgPath))
	rootCmd.AddCommand(newWatchCmd(&cfgPath))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Configuration file path (default $CONFIG_PATH or "+defaultConfigPath+")")

	return rootCmd
}

// overrides are per-invocation settings that win over the config file.
type overrides struct {
	csvPath   string
	mode      string
	window    int
	windowSet bool
}

func (o *overrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.csvPath, "csv", "", "Price history CSV (overrides data_source.csv_path)")
	cmd.Flags().StringVar(&o.mode, "mode", "", "Oscillator mode: rsi or stochastic")
	cmd.Flags().IntVar(&o.window, "window", 0, "Oscillator window")
}

// loadConfig resolves the config path, applies overrides and validates the result.
func loadConfig(path string, args []string, o overrides) (*config.Config, error) {
	if path == "" {
		path = defaultConfigPath
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(args) > 0 {
		cfg.DataSource.Symbol = strings.ToUpper(args[0])
	}
	if o.csvPath != "" {
		cfg.DataSource.CSVPath = o.csvPath
	}
	if o.mode != "" {
		cfg.Oscillator.Mode = strings.ToLower(o.mode)
	}
	if o.windowSet {
		cfg.Oscillator.Window = o.window
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// buildCollector wires a CSV fetcher and the configured indicator parameters.
func buildCollector(cfg *config.Config) (*collector.Collector, error) {
	start, end, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}
	fetcher := collector.NewCSVFetcher(cfg.DataSource.CSVPath)
	log.Printf("[INFO] data source: %s (%s)", fetcher.Name(), cfg.DataSource.CSVPath)
	return collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Interval, start, end, collector.Request{
		Params: cfg.Params(),
		Mode:   cfg.Mode(),
		Window: cfg.Oscillator.Window,
	}), nil
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfgPath *string) *cobra.Command {
	var (
		o      overrides
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Compute the impulse and oscillator report once",
		Long: `Compute the impulse classification and the configured oscillator for a price history.
Example: impulse analyze MS --csv data/MS.csv --mode stochastic --window 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.windowSet = cmd.Flags().Changed("window")
			cfg, err := loadConfig(*cfgPath, args, o)
			if err != nil {
				return err
			}
			col, err := buildCollector(cfg)
			if err != nil {
				return err
			}
			report, err := col.Collect(cmd.Context())
			if err != nil {
				return fmt.Errorf("analyze %s: %w", cfg.DataSource.Symbol, err)
			}
			sig := strategy.Evaluate(report)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Report *model.Report `json:"report"`
					Signal *model.Signal `json:"signal"`
				}{report, sig})
			}
			return (&StyledSink{W: cmd.OutOrStdout()}).Deliver(report, sig)
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}

// newWatchCmd creates the watch command
func newWatchCmd(cfgPath *string) *cobra.Command {
	var (
		o      overrides
		runNow bool
	)
	cmd := &cobra.Command{
		Use:   "watch [SYMBOL]",
		Short: "Recompute the report on the configured cron schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.windowSet = cmd.Flags().Changed("window")
			cfg, err := loadConfig(*cfgPath, args, o)
			if err != nil {
				return err
			}
			col, err := buildCollector(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var (
				m      *metrics.Metrics
				health *metrics.HealthStatus
			)
			if cfg.Metrics.Addr != "" {
				m = metrics.NewMetrics()
				health = metrics.NewHealthStatus(cfg.DataSource.Symbol)
				srv := metrics.NewServer(cfg.Metrics.Addr, m, health)
				srv.Start()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := srv.Stop(shutdownCtx); err != nil {
						log.Printf("[WARN] metrics server shutdown: %v", err)
					}
				}()
			}

			sched := scheduler.NewScheduler(ctx, col, &StyledSink{W: cmd.OutOrStdout()}, m, health)
			if err := sched.Register(cfg.Schedule.RecomputeCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if runNow || os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] run-on-start enabled, recomputing now")
				if err := sched.RunNow(); err != nil {
					log.Printf("[ERROR] recompute: %v", err)
				}
			}

			log.Printf("[INFO] watching %s on %q. Press Ctrl+C to stop.", cfg.DataSource.Symbol, cfg.Schedule.RecomputeCron)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			select {
			case <-sigCh:
				log.Println("[INFO] shutdown signal received, stopping...")
			case <-ctx.Done():
			}
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Recompute once immediately on start")
	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "impulse %s\n", Version)
		},
	}
}
