package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	JWTSigningKey   string
	JWTIssuer       string
	JWTAudience     string
}

// Store selects and configures the result store.
type Store struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
	ResultTTL   time.Duration
}

// RedisConfig configures the Redis client used by the redis store driver.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the verification event publisher. No brokers disables it.
type Kafka struct {
	Brokers    []string
	Topic      string
	Partitions int32
}

// Logging configures the slog handler.
type Logging struct {
	Level  string
	Format string
}

// Verification holds pipeline overrides.
type Verification struct {
	ReferenceDataPath string
	// ValidityCutoff overrides the default cutoff when non-zero.
	ValidityCutoff float64
}

// Config is the full process configuration.
type Config struct {
	Server       Server
	Store        Store
	Redis        RedisConfig
	Kafka        Kafka
	Logging      Logging
	Verification Verification
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []string
	duration := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", key, raw))
			return def
		}
		return d
	}

	cfg := Config{
		Server: Server{
			Addr:            getEnv("TRADEVERIFY_ADDR", ":8080"),
			ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
			JWTIssuer:       getEnv("JWT_ISSUER", "tradeverify"),
			JWTAudience:     getEnv("JWT_AUDIENCE", "tradeverify-api"),
		},
		Store: Store{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "tradeverify.db"),
			ResultTTL:   duration("RESULT_TTL", 0),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:      getEnv("KAFKA_TOPIC", "verification.completed"),
			Partitions: 3,
		},
		Logging: Logging{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Verification: Verification{
			ReferenceDataPath: os.Getenv("REFERENCE_DATA_PATH"),
		},
	}

	if raw := os.Getenv("VALIDITY_CUTOFF"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 100 {
			errs = append(errs, fmt.Sprintf("VALIDITY_CUTOFF: must be a number in (0,100], got %q", raw))
		} else {
			cfg.Verification.ValidityCutoff = v
		}
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.Store.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case StoreRedis:
		if cfg.Redis.URL == "" {
			errs = append(errs, "REDIS_URL is required when STORE_DRIVER=redis")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER: unknown driver %q", cfg.Store.Driver))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
