package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envDotenvFile      = "ENV_FILE"
	envPort            = "PORT"
	envDatasetSource   = "DATASET_SOURCE"
	envDatasetPath     = "DATASET_PATH"
	envDatasetDelim    = "DATASET_DELIMITER"
	envTopN            = "TOP_N"
	envMinTeamPicks    = "MIN_TEAM_PICKS"
	envExplorerLimit   = "EXPLORER_LIMIT"
	envHistogramBins   = "HISTOGRAM_BINS"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort            = "4000"
	defaultDotenvFile      = ".env"
	defaultDatasetSource   = "fixture"
	defaultDatasetDelim    = ","
	defaultTopN            = 10
	defaultMinTeamPicks    = 10
	defaultExplorerLimit   = 500
	defaultHistogramBins   = 50
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultShutdownTimeout = 10 * Duration(time.Second)
	defaultMetricsPort     = "9090"
	defaultServiceName     = "nba-draft-roi"
)
