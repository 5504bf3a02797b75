package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration. FromEnv keeps main lean.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration

	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// Mock source latency bounds for the legacy verification path.
	MockLatencyMin time.Duration
	MockLatencyMax time.Duration
}

// RedisConfig holds connection settings for the report cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the async audit publisher. Empty seeds
// disable publishing entirely.
type KafkaConfig struct {
	Seeds []string
	Topic string
}

// DashboardCacheTTL bounds staleness of the cached dashboard aggregate.
var DashboardCacheTTL = 30 * time.Second

// FromEnv builds a Server config from environment variables. A local .env
// file is loaded first when present so development setups need no exports.
func FromEnv() Server {
	_ = godotenv.Load()

	cfg := Server{
		Addr:          envOr("IDV_ADDR", ":8080"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "idv-service"),
		JWTAudience:   envOr("JWT_AUDIENCE", "idv-clients"),
		TokenTTL:      envDurationOr("TOKEN_TTL", time.Hour),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Seeds: splitNonEmpty(os.Getenv("KAFKA_SEEDS")),
			Topic: envOr("AUDIT_TOPIC", "idv.verification.attempts"),
		},
		MockLatencyMin: envDurationOr("MOCK_LATENCY_MIN", 50*time.Millisecond),
		MockLatencyMax: envDurationOr("MOCK_LATENCY_MAX", 200*time.Millisecond),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if s := csv[start:i]; s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	return out
}
