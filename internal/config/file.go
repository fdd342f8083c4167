package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML files. Zero values leave the default in place.
type fileConfig struct {
	Port    string `yaml:"port"`
	Dataset struct {
		Source    string `yaml:"source"`
		Path      string `yaml:"path"`
		Delimiter string `yaml:"delimiter"`
	} `yaml:"dataset"`
	Query struct {
		TopN          int `yaml:"top_n"`
		MinTeamPicks  int `yaml:"min_team_picks"`
		ExplorerLimit int `yaml:"explorer_limit"`
		HistogramBins int `yaml:"histogram_bins"`
	} `yaml:"query"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Metrics struct {
		Enabled      *bool  `yaml:"enabled"`
		Port         string `yaml:"port"`
		OtlpEndpoint string `yaml:"otlp_endpoint"`
		ServiceName  string `yaml:"service_name"`
		OtlpInsecure *bool  `yaml:"otlp_insecure"`
	} `yaml:"metrics"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

func readFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	return parseFile(f)
}

func parseFile(r io.Reader) (fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	if fc.ShutdownTimeout != "" {
		if d, err := time.ParseDuration(fc.ShutdownTimeout); err != nil || d <= 0 {
			return fileConfig{}, fmt.Errorf("parse config file: invalid shutdown_timeout %q", fc.ShutdownTimeout)
		}
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.Port, fc.Port)
	setString(&cfg.Dataset.Source, fc.Dataset.Source)
	setString(&cfg.Dataset.Path, fc.Dataset.Path)
	setString(&cfg.Dataset.Delimiter, fc.Dataset.Delimiter)
	setInt(&cfg.Query.TopN, fc.Query.TopN)
	setInt(&cfg.Query.MinTeamPicks, fc.Query.MinTeamPicks)
	setInt(&cfg.Query.ExplorerLimit, fc.Query.ExplorerLimit)
	setInt(&cfg.Query.HistogramBins, fc.Query.HistogramBins)
	setString(&cfg.Log.Level, fc.Log.Level)
	setString(&cfg.Log.Format, fc.Log.Format)
	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	setString(&cfg.Metrics.Port, fc.Metrics.Port)
	setString(&cfg.Metrics.OtlpEndpoint, fc.Metrics.OtlpEndpoint)
	setString(&cfg.Metrics.ServiceName, fc.Metrics.ServiceName)
	if fc.Metrics.OtlpInsecure != nil {
		cfg.Metrics.OtlpInsecure = *fc.Metrics.OtlpInsecure
	}
	if fc.ShutdownTimeout != "" {
		// validated in parseFile
		cfg.ShutdownTimeout, _ = time.ParseDuration(fc.ShutdownTimeout)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
