package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/nba-draft-roi/internal/analysis"
)

// Config holds runtime configuration for the server and the report command.
type Config struct {
	Port            string
	Dataset         DatasetConfig
	Query           QueryConfig
	Log             LogConfig
	Metrics         MetricsConfig
	ShutdownTimeout Duration
}

// DatasetConfig selects where player records come from.
type DatasetConfig struct {
	Source    string
	Path      string
	Delimiter string
}

// QueryConfig holds the defaults applied when a request omits a parameter.
type QueryConfig struct {
	TopN          int
	MinTeamPicks  int
	ExplorerLimit int
	HistogramBins int
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load builds the configuration. Values come from defaults, then the YAML file
// named by CONFIG_FILE, then the environment (a .env file fills variables that
// are not already set).
func Load() (Config, error) {
	if err := loadDotenv(envOrDefault(envDotenvFile, defaultDotenvFile)); err != nil {
		return Config{}, err
	}

	cfg := defaults()
	if path := os.Getenv(envConfigFile); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file.apply(&cfg)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port: defaultPort,
		Dataset: DatasetConfig{
			Source:    defaultDatasetSource,
			Delimiter: defaultDatasetDelim,
		},
		Query: QueryConfig{
			TopN:          defaultTopN,
			MinTeamPicks:  defaultMinTeamPicks,
			ExplorerLimit: defaultExplorerLimit,
			HistogramBins: defaultHistogramBins,
		},
		Log:             LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Metrics:         defaultMetrics(),
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

func applyEnv(cfg *Config) {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.Dataset.Source = envOrDefault(envDatasetSource, cfg.Dataset.Source)
	cfg.Dataset.Path = envOrDefault(envDatasetPath, cfg.Dataset.Path)
	cfg.Dataset.Delimiter = envOrDefault(envDatasetDelim, cfg.Dataset.Delimiter)
	cfg.Query.TopN = intEnvOrDefault(envTopN, cfg.Query.TopN)
	cfg.Query.MinTeamPicks = intEnvOrDefault(envMinTeamPicks, cfg.Query.MinTeamPicks)
	cfg.Query.ExplorerLimit = intEnvOrDefault(envExplorerLimit, cfg.Query.ExplorerLimit)
	cfg.Query.HistogramBins = intEnvOrDefault(envHistogramBins, cfg.Query.HistogramBins)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.ShutdownTimeout = durationEnvOrDefault(envShutdownTimeout, cfg.ShutdownTimeout)
	applyMetricsEnv(&cfg.Metrics)
}

// Validate rejects settings the loader cannot act on.
func (c Config) Validate() error {
	switch strings.ToLower(c.Dataset.Source) {
	case "csv":
		if c.Dataset.Path == "" {
			return fmt.Errorf("%s is required when %s=csv", envDatasetPath, envDatasetSource)
		}
	case "fixture":
	default:
		return fmt.Errorf("unknown %s %q", envDatasetSource, c.Dataset.Source)
	}
	if _, err := c.Dataset.DelimiterRune(); err != nil {
		return err
	}
	if c.Query.HistogramBins > analysis.MaxBins {
		return fmt.Errorf("%s must be at most %d (got %d)", envHistogramBins, analysis.MaxBins, c.Query.HistogramBins)
	}
	return nil
}

// DelimiterRune returns the field separator; "tab" and "\t" both mean a tab.
func (d DatasetConfig) DelimiterRune() (rune, error) {
	switch d.Delimiter {
	case "":
		return ',', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	runes := []rune(d.Delimiter)
	if len(runes) != 1 || runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("invalid %s %q: want a single character", envDatasetDelim, d.Delimiter)
	}
	return runes[0], nil
}

func loadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
