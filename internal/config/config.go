package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Artifacts
	ArtifactDir        string
	HistoricalDataPath string

	// Optional backends. An empty URL disables the backend.
	RedisURL      string
	ClickHouseURL string
	CacheTTL      time.Duration

	// Audit worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// CollectorConfig configures the scraping commands.
type CollectorConfig struct {
	Env string

	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	DelayMin    time.Duration
	DelayMax    time.Duration
	BatchSize   int
	PostgresURL string

	MatchCSVPath     string
	GameIDPath       string
	TeamStatsCSVPath string
	TeamStatsSeason  string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// LoadDotEnv loads the first .env file found. A missing file is not an error.
func LoadDotEnv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

// Load loads the prediction service configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		RedisURL:      getEnv("REDIS_URL", ""),
		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 500),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.ArtifactDir, err = getEnvRequired("ARTIFACT_DIR"); err != nil {
		return nil, err
	}
	cfg.HistoricalDataPath = getEnv("HISTORICAL_DATA_PATH", cfg.ArtifactDir+"/processed_historical_data.csv")

	return cfg, nil
}

// LoadCollector loads the scraper configuration. Every key has a default.
func LoadCollector() (*CollectorConfig, error) {
	cfg := &CollectorConfig{
		Env:         getEnv("ENV", "development"),
		BaseURL:     strings.TrimRight(getEnv("GOLGG_BASE_URL", "https://gol.gg"), "/"),
		UserAgent:   getEnv("USER_AGENT", defaultUserAgent),
		Timeout:     getEnvDuration("SCRAPE_TIMEOUT", 30*time.Second),
		DelayMin:    getEnvDuration("SCRAPE_DELAY_MIN", 1*time.Second),
		DelayMax:    getEnvDuration("SCRAPE_DELAY_MAX", 3*time.Second),
		BatchSize:   getEnvInt("SCRAPE_BATCH_SIZE", 10),
		PostgresURL: getEnv("POSTGRES_URL", ""),

		MatchCSVPath:     getEnv("MATCH_CSV_PATH", "combined_match_stats.csv"),
		GameIDPath:       getEnv("GAME_ID_PATH", "game_ids.txt"),
		TeamStatsCSVPath: getEnv("TEAM_STATS_CSV_PATH", "team_stats_s15.csv"),
		TeamStatsSeason:  getEnv("TEAM_STATS_SEASON", "S15"),
	}

	if cfg.DelayMax < cfg.DelayMin {
		return nil, fmt.Errorf("SCRAPE_DELAY_MAX (%s) is below SCRAPE_DELAY_MIN (%s)", cfg.DelayMax, cfg.DelayMin)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("SCRAPE_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
