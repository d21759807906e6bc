package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Accounts    AccountsConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig describes how the storage gateway reaches Postgres.
// URL wins over the individual parts when set.
type DatabaseConfig struct {
	URL            string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	TLSMode        string
	MaxConnections int
	MinConnections int
	AcquireTimeout time.Duration
	QueryTimeout   time.Duration
}

type AccountsConfig struct {
	BcryptCost   int
	TeamPickSeed int64
}

type RateLimitConfig struct {
	AuthPerMinute     int
	PublicPerMinute   int
	TrustedProxyCIDRs []string
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

const (
	TLSModeDisable    = "disable"
	TLSModeRequire    = "require"
	TLSModeVerifyFull = "verify-full"
)

const defaultCORSOrigins = "http://127.0.0.1:5500,http://localhost:5500"

// Defaults returns the configuration used when neither a file nor the
// environment sets a value.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Name:           "taqreeb",
			TLSMode:        TLSModeDisable,
			MaxConnections: 10,
			AcquireTimeout: 10 * time.Second,
			QueryTimeout:   10 * time.Second,
		},
		Accounts: AccountsConfig{BcryptCost: 12},
		RateLimit: RateLimitConfig{
			AuthPerMinute:   10,
			PublicPerMinute: 120,
		},
		CORS:    CORSConfig{AllowedOrigins: splitList(defaultCORSOrigins)},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Tracing: TracingConfig{
			Exporter:     "stdout",
			ServiceName:  "taqreeb",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Environment: "development",
	}
}

// Load reads configuration from environment variables on top of Defaults.
func Load() (Config, error) {
	return loadFrom(Defaults())
}

// LoadWithFile reads a YAML file on top of Defaults and then applies
// environment variables, which always win.
func LoadWithFile(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Load()
	}
	base, err := LoadFile(path, Defaults())
	if err != nil {
		return Config{}, err
	}
	return loadFrom(base)
}

func loadFrom(base Config) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", base.Server.Host),
			Port: getEnvInt("SERVER_PORT", base.Server.Port),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", base.Database.URL),
			Host:           getEnv("DB_HOST", base.Database.Host),
			Port:           getEnvInt("DB_PORT", base.Database.Port),
			User:           getEnv("DB_USER", base.Database.User),
			Password:       getEnv("DB_PASSWORD", base.Database.Password),
			Name:           getEnv("DB_NAME", base.Database.Name),
			TLSMode:        strings.ToLower(getEnv("DB_TLS_MODE", base.Database.TLSMode)),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", base.Database.MaxConnections),
			MinConnections: getEnvInt("DATABASE_MIN_CONNECTIONS", base.Database.MinConnections),
			AcquireTimeout: getEnvDuration("DATABASE_ACQUIRE_TIMEOUT", base.Database.AcquireTimeout),
			QueryTimeout:   getEnvDuration("DATABASE_QUERY_TIMEOUT", base.Database.QueryTimeout),
		},
		Accounts: AccountsConfig{
			BcryptCost:   getEnvInt("BCRYPT_COST", base.Accounts.BcryptCost),
			TeamPickSeed: getEnvInt64("TEAM_PICK_SEED", base.Accounts.TeamPickSeed),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute:     getEnvInt("RATE_LIMIT_AUTH_PER_MINUTE", base.RateLimit.AuthPerMinute),
			PublicPerMinute:   getEnvInt("RATE_LIMIT_PUBLIC_PER_MINUTE", base.RateLimit.PublicPerMinute),
			TrustedProxyCIDRs: getEnvList("TRUSTED_PROXY_CIDRS", base.RateLimit.TrustedProxyCIDRs),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", base.CORS.AllowedOrigins),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", base.Logging.Level),
			Format: getEnv("LOG_FORMAT", base.Logging.Format),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", base.Tracing.Enabled),
			Exporter:     getEnv("TRACING_EXPORTER", base.Tracing.Exporter),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", base.Tracing.ServiceName),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", base.Tracing.OTLPEndpoint),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", base.Tracing.SampleRate),
		},
		Environment: getEnv("ENVIRONMENT", base.Environment),
	}

	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			cfg.CORS.AllowAllOrigins = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.TLSMode {
	case TLSModeDisable, TLSModeRequire, TLSModeVerifyFull:
	default:
		return fmt.Errorf("DB_TLS_MODE must be one of disable, require, verify-full (got %q)", c.Database.TLSMode)
	}
	if c.Database.MaxConnections <= 0 {
		return fmt.Errorf("DATABASE_MAX_CONNECTIONS must be positive")
	}
	if c.Database.MinConnections < 0 || c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("DATABASE_MIN_CONNECTIONS must be between 0 and DATABASE_MAX_CONNECTIONS")
	}
	if c.Database.AcquireTimeout <= 0 || c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database timeouts must be positive")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Environment == "production" && c.CORS.AllowAllOrigins {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot contain * in production")
	}
	return nil
}

// DSN returns the connection string handed to pgxpool.ParseConfig. The TLS
// mode is applied on top of DATABASE_URL as well.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		parsed, err := url.Parse(d.URL)
		if err != nil || parsed.Scheme == "" {
			return d.URL
		}
		query := parsed.Query()
		if query.Get("sslmode") == "" && d.TLSMode != "" {
			query.Set("sslmode", d.TLSMode)
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		dsn.User = url.UserPassword(d.User, d.Password)
	} else if d.User != "" {
		dsn.User = url.User(d.User)
	}
	query := url.Values{}
	query.Set("sslmode", d.TLSMode)
	dsn.RawQuery = query.Encode()
	return dsn.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return splitList(value)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
