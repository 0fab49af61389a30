package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr     = ":8080"
	defaultDBPath         = ":memory:"
	defaultJobsSeed       = "monday-jobs-seed"
	defaultJobCount       = 60
	defaultMTBFTarget     = 200
	defaultMTTRTarget     = 2
	defaultThresholdHours = 150

	envListenAddr     = "MXM_LISTEN_ADDR"
	envDBPath         = "MXM_DB_PATH"
	envLogLevel       = "MXM_LOG_LEVEL"
	envJobsSeed       = "MXM_JOBS_SEED"
	envJobCount       = "MXM_JOB_COUNT"
	envMTBFTarget     = "MXM_MTBF_TARGET"
	envMTTRTarget     = "MXM_MTTR_TARGET"
	envThresholdHours = "MXM_MTBF_THRESHOLD"

	dotEnvFile = ".env"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	// DBPath is the SQLite thread cache. Empty selects the in-process map.
	DBPath   string
	LogLevel slog.Level

	JobsSeed       string
	JobCount       int
	MTBFTarget     float64
	MTTRTarget     float64
	ThresholdHours float64
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first; variables already
// set in the environment win.
func Load() Config {
	LoadDotEnv(dotEnvFile)

	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DBPath:         defaultDBPath,
		LogLevel:       slog.LevelInfo,
		JobsSeed:       defaultJobsSeed,
		JobCount:       defaultJobCount,
		MTBFTarget:     defaultMTBFTarget,
		MTTRTarget:     defaultMTTRTarget,
		ThresholdHours: defaultThresholdHours,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	// set but empty is meaningful here
	if v, ok := os.LookupEnv(envDBPath); ok {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envJobsSeed); v != "" {
		cfg.JobsSeed = v
	}
	cfg.JobCount = parsePositiveInt(os.Getenv(envJobCount), cfg.JobCount)
	cfg.MTBFTarget = parsePositiveFloat(os.Getenv(envMTBFTarget), cfg.MTBFTarget)
	cfg.MTTRTarget = parsePositiveFloat(os.Getenv(envMTTRTarget), cfg.MTTRTarget)
	cfg.ThresholdHours = parsePositiveFloat(os.Getenv(envThresholdHours), cfg.ThresholdHours)

	return cfg
}

// LoadDotEnv applies the variables in the named files without overriding
// ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("config: ignoring env file", "file", f, "error", err)
		}
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func parsePositiveFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
