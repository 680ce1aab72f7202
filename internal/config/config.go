package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the discovery service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      ProviderConfig
	OMDB      ProviderConfig
	Recommend RecommendConfig
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ProviderConfig holds an upstream content API's configuration.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	RPS     float64
}

// RecommendConfig holds the recommendation engine tunables. The defaults are
// product knobs with no derivation behind them, so they stay configurable.
type RecommendConfig struct {
	PopularityNorm   float64
	RatingBandOffset float64
	MinScore         float64
	TrendingFloor    float64
	PoolPages        int
	EnrichWorkers    int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	poolPages, _ := strconv.Atoi(getEnv("RECOMMEND_POOL_PAGES", "3"))
	enrichWorkers, _ := strconv.Atoi(getEnv("ENRICH_WORKERS", "5"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movie_discovery"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: ProviderConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			RPS:     getEnvFloat("TMDB_RPS", 20),
		},
		OMDB: ProviderConfig{
			APIKey:  getEnv("OMDB_API_KEY", ""),
			BaseURL: getEnv("OMDB_BASE_URL", "https://www.omdbapi.com"),
			RPS:     getEnvFloat("OMDB_RPS", 10),
		},
		Recommend: RecommendConfig{
			PopularityNorm:   getEnvFloat("RECOMMEND_POPULARITY_NORM", 1000),
			RatingBandOffset: getEnvFloat("RECOMMEND_RATING_BAND_OFFSET", 1.5),
			MinScore:         getEnvFloat("RECOMMEND_MIN_SCORE", 0.3),
			TrendingFloor:    getEnvFloat("RECOMMEND_TRENDING_FLOOR", 100),
			PoolPages:        poolPages,
			EnrichWorkers:    enrichWorkers,
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
