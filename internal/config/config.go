package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ImpulseSystem/internal/model"
)

// DateLayout is the format of start_date / end_date.
const DateLayout = "2006-01-02"

// Intervals lists the bar intervals the data source understands.
var Intervals = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Symbol    string `yaml:"symbol"`
		CSVPath   string `yaml:"csv_path"`
		Interval  string `yaml:"interval"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
	} `yaml:"data_source"`
	Impulse struct {
		ShortEMA int `yaml:"short_ema"`
		LongEMA  int `yaml:"long_ema"`
		Signal   int `yaml:"signal"`
	} `yaml:"impulse"`
	Oscillator struct {
		Mode   string `yaml:"mode"`
		Window int    `yaml:"window"`
	} `yaml:"oscillator"`
	Schedule struct {
		RecomputeCron string `yaml:"recompute_cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error. Defaults are set first, so only fields absent from the file
// and the environment keep them; an explicit zero reaches Validate.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()

	// Environment variable overrides
	if v := os.Getenv("IMPULSE_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("IMPULSE_CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("IMPULSE_INTERVAL"); v != "" {
		cfg.DataSource.Interval = v
	}
	if v := os.Getenv("IMPULSE_START_DATE"); v != "" {
		cfg.DataSource.StartDate = v
	}
	if v := os.Getenv("IMPULSE_END_DATE"); v != "" {
		cfg.DataSource.EndDate = v
	}
	envInt("IMPULSE_SHORT_EMA", &cfg.Impulse.ShortEMA)
	envInt("IMPULSE_LONG_EMA", &cfg.Impulse.LongEMA)
	envInt("IMPULSE_SIGNAL", &cfg.Impulse.Signal)
	if v := os.Getenv("OSCILLATOR_MODE"); v != "" {
		cfg.Oscillator.Mode = v
	}
	envInt("OSCILLATOR_WINDOW", &cfg.Oscillator.Window)
	if v := os.Getenv("CRON_RECOMPUTE"); v != "" {
		cfg.Schedule.RecomputeCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}

	return cfg, nil
}

// defaultConfig returns the settings used for anything the file and environment leave out.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.DataSource.Symbol = "MS"
	cfg.DataSource.CSVPath = "data/MS.csv"
	cfg.DataSource.Interval = "1d"
	cfg.Impulse.ShortEMA = 11
	cfg.Impulse.LongEMA = 22
	cfg.Impulse.Signal = 9
	cfg.Oscillator.Mode = string(model.ModeRSI)
	cfg.Oscillator.Window = 14
	cfg.Schedule.RecomputeCron = "0 */5 * * * *"
	return cfg
}

// envInt overwrites *dst when key holds an integer; anything else is ignored.
func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if !knownInterval(c.DataSource.Interval) {
		return fmt.Errorf("data_source.interval %q is not one of %v", c.DataSource.Interval, Intervals)
	}
	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("data_source.start_date must not be after end_date")
	}
	if c.Impulse.ShortEMA <= 0 {
		return fmt.Errorf("impulse.short_ema must be positive")
	}
	if c.Impulse.LongEMA <= 0 {
		return fmt.Errorf("impulse.long_ema must be positive")
	}
	if c.Impulse.Signal <= 0 {
		return fmt.Errorf("impulse.signal must be positive")
	}
	if !c.Mode().Valid() {
		return fmt.Errorf("oscillator.mode must be %q or %q", model.ModeRSI, model.ModeStochastic)
	}
	if c.Oscillator.Window <= 0 {
		return fmt.Errorf("oscillator.window must be positive")
	}
	return nil
}

// DateRange parses start_date / end_date. Unset dates are returned as zero times.
func (c *Config) DateRange() (start, end time.Time, err error) {
	if c.DataSource.StartDate != "" {
		if start, err = time.Parse(DateLayout, c.DataSource.StartDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data_source.start_date: %w", err)
		}
	}
	if c.DataSource.EndDate != "" {
		if end, err = time.Parse(DateLayout, c.DataSource.EndDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data_source.end_date: %w", err)
		}
	}
	return start, end, nil
}

// Mode returns the configured oscillator mode.
func (c *Config) Mode() model.OscillatorMode {
	return model.OscillatorMode(c.Oscillator.Mode)
}

// Params returns the impulse spans.
func (c *Config) Params() model.ImpulseParams {
	return model.ImpulseParams{
		ShortEMA: c.Impulse.ShortEMA,
		LongEMA:  c.Impulse.LongEMA,
		Signal:   c.Impulse.Signal,
	}
}

func knownInterval(iv string) bool {
	for _, known := range Intervals {
		if iv == known {
			return true
		}
	}
	return false
}
