package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RecommendationConfig holds the engine tunables. Zero values are replaced by
// the engine defaults.
type RecommendationConfig struct {
	DefaultLimit            int
	MaxLimit                int
	CollaborativeSampleSize int
	ContentEventWindow      int
	TrendingWindowDays      int
	TrendingSaturation      int
	BatchConcurrency        int
	BatchInterval           time.Duration
	TrendingCacheTTL        time.Duration
	Eligibility             string
}

// Eligibility modes for RECO_ELIGIBILITY.
const (
	EligibilityNone    = "none"
	EligibilityInStock = "in_stock"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnvBool("REDIS_ENABLED", false),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
	}

	reco, err := loadRecommendation()
	if err != nil {
		return nil, err
	}
	cfg.Recommendation = reco

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func loadRecommendation() (RecommendationConfig, error) {
	var (
		rc  RecommendationConfig
		err error
	)

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"RECO_DEFAULT_LIMIT", 10, &rc.DefaultLimit},
		{"RECO_MAX_LIMIT", 100, &rc.MaxLimit},
		{"RECO_COLLABORATIVE_SAMPLE_SIZE", 100, &rc.CollaborativeSampleSize},
		{"RECO_CONTENT_EVENT_WINDOW", 50, &rc.ContentEventWindow},
		{"RECO_TRENDING_WINDOW_DAYS", 30, &rc.TrendingWindowDays},
		{"RECO_TRENDING_SATURATION", 10, &rc.TrendingSaturation},
		{"RECO_BATCH_CONCURRENCY", 4, &rc.BatchConcurrency},
	}
	for _, it := range ints {
		if *it.dst, err = getEnvInt(it.key, it.def); err != nil {
			return RecommendationConfig{}, fmt.Errorf("invalid %s: %w", it.key, err)
		}
		if *it.dst <= 0 {
			return RecommendationConfig{}, fmt.Errorf("%s must be greater than 0", it.key)
		}
	}

	if rc.DefaultLimit > rc.MaxLimit {
		return RecommendationConfig{}, errors.New("RECO_DEFAULT_LIMIT cannot exceed RECO_MAX_LIMIT")
	}

	if rc.BatchInterval, err = getEnvDuration("RECO_BATCH_INTERVAL", 6*time.Hour); err != nil {
		return RecommendationConfig{}, fmt.Errorf("invalid RECO_BATCH_INTERVAL: %w", err)
	}
	if rc.TrendingCacheTTL, err = getEnvDuration("RECO_TRENDING_CACHE_TTL", 5*time.Minute); err != nil {
		return RecommendationConfig{}, fmt.Errorf("invalid RECO_TRENDING_CACHE_TTL: %w", err)
	}
	if rc.BatchInterval <= 0 {
		return RecommendationConfig{}, errors.New("RECO_BATCH_INTERVAL must be greater than 0")
	}
	if rc.TrendingCacheTTL <= 0 {
		return RecommendationConfig{}, errors.New("RECO_TRENDING_CACHE_TTL must be greater than 0")
	}

	rc.Eligibility = strings.ToLower(getEnv("RECO_ELIGIBILITY", EligibilityNone))
	if rc.Eligibility != EligibilityNone && rc.Eligibility != EligibilityInStock {
		return RecommendationConfig{}, fmt.Errorf("invalid RECO_ELIGIBILITY %q", rc.Eligibility)
	}

	return rc, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func getEnvBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(val)
}
