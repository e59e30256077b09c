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

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Log       LogConfig
	Analytics AnalyticsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type AuthConfig struct {
	SimulatedLatency time.Duration
	Timeout          time.Duration
}

type StorageConfig struct {
	Driver string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
	// TTL expires saved keys. Zero keeps them forever.
	TTL time.Duration
}

type DatabaseConfig struct {
	DBHost          string
	DBPort          string
	DBName          string
	DBUser          string
	DBPassword      string
	DBSSLMode       string
	MigrationsDir   string
	ConnectTimeout  time.Duration
	PoolMaxConns    int32
	PoolMinConns    int32
	PoolMaxConnIdle time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AnalyticsConfig struct {
	CacheSize    int
	GrowthPeriod string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variable")
)

// Load reads configuration from the environment, after merging any .env file
// found in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string

	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobwise"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: dur("JWT_EXPIRES_IN", 24*time.Hour),
	}

	cfg.Auth = AuthConfig{
		SimulatedLatency: dur("AUTH_SIMULATED_LATENCY", 0),
		Timeout:          dur("AUTH_TIMEOUT", 5*time.Second),
	}

	cfg.Storage = StorageConfig{Driver: strings.ToLower(opt("STORAGE_DRIVER", StorageMemory))}
	switch cfg.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	cfg.Redis = RedisConfig{
		Host:      opt("REDIS_HOST", "localhost"),
		Port:      opt("REDIS_PORT", "6379"),
		Password:  opt("REDIS_PASSWORD", ""),
		DB:        num("REDIS_DB", 0),
		KeyPrefix: opt("REDIS_KEY_PREFIX", "jobwise:"),
		TTL:       dur("REDIS_TTL", 0),
	}

	cfg.Database = DatabaseConfig{
		DBHost:          opt("DB_HOST", ""),
		DBPort:          opt("DB_PORT", "5432"),
		DBName:          opt("DB_NAME", ""),
		DBUser:          opt("DB_USER", ""),
		DBPassword:      opt("DB_PASSWORD", ""),
		DBSSLMode:       opt("DB_SSL_MODE", "disable"),
		MigrationsDir:   opt("DB_MIGRATIONS_DIR", ""),
		ConnectTimeout:  dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:    int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:    int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnIdle: dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
	}
	if cfg.Storage.Driver == StoragePostgres {
		if cfg.Database.DBHost == "" {
			missing = append(missing, "DB_HOST")
		}
		if cfg.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(opt("LOG_LEVEL", "info")),
		Format: strings.ToLower(opt("LOG_FORMAT", "text")),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheSize:    num("ANALYTICS_CACHE_SIZE", 256),
		GrowthPeriod: strings.ToLower(opt("ANALYTICS_GROWTH_PERIOD", "weekly")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.DBHost),
		strings.TrimSpace(c.DBPort),
		strings.TrimSpace(c.DBUser),
		c.DBPassword,
		strings.TrimSpace(c.DBName),
		strings.TrimSpace(c.DBSSLMode),
	)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
