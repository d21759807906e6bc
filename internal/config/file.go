package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML files. Pointer fields distinguish
// "absent" from zero so a file only overrides what it names.
type fileConfig struct {
	Environment *string `yaml:"environment"`
	Server      struct {
		Host *string `yaml:"host"`
		Port *int    `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL            *string        `yaml:"url"`
		Host           *string        `yaml:"host"`
		Port           *int           `yaml:"port"`
		User           *string        `yaml:"user"`
		Password       *string        `yaml:"password"`
		Name           *string        `yaml:"name"`
		TLSMode        *string        `yaml:"tls_mode"`
		MaxConnections *int           `yaml:"max_connections"`
		MinConnections *int           `yaml:"min_connections"`
		AcquireTimeout *time.Duration `yaml:"acquire_timeout"`
		QueryTimeout   *time.Duration `yaml:"query_timeout"`
	} `yaml:"database"`
	Accounts struct {
		BcryptCost   *int   `yaml:"bcrypt_cost"`
		TeamPickSeed *int64 `yaml:"team_pick_seed"`
	} `yaml:"accounts"`
	RateLimit struct {
		AuthPerMinute     *int     `yaml:"auth_per_minute"`
		PublicPerMinute   *int     `yaml:"public_per_minute"`
		TrustedProxyCIDRs []string `yaml:"trusted_proxy_cidrs"`
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Logging struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"logging"`
	Tracing struct {
		Enabled      *bool    `yaml:"enabled"`
		Exporter     *string  `yaml:"exporter"`
		ServiceName  *string  `yaml:"service_name"`
		OTLPEndpoint *string  `yaml:"otlp_endpoint"`
		SampleRate   *float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`
}

// LoadFile decodes a YAML config file and applies it on top of base.
// Unknown keys are rejected so typos do not pass silently.
func LoadFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg := base
	set(&cfg.Environment, fc.Environment)
	set(&cfg.Server.Host, fc.Server.Host)
	set(&cfg.Server.Port, fc.Server.Port)

	set(&cfg.Database.URL, fc.Database.URL)
	set(&cfg.Database.Host, fc.Database.Host)
	set(&cfg.Database.Port, fc.Database.Port)
	set(&cfg.Database.User, fc.Database.User)
	set(&cfg.Database.Password, fc.Database.Password)
	set(&cfg.Database.Name, fc.Database.Name)
	set(&cfg.Database.TLSMode, fc.Database.TLSMode)
	set(&cfg.Database.MaxConnections, fc.Database.MaxConnections)
	set(&cfg.Database.MinConnections, fc.Database.MinConnections)
	set(&cfg.Database.AcquireTimeout, fc.Database.AcquireTimeout)
	set(&cfg.Database.QueryTimeout, fc.Database.QueryTimeout)

	set(&cfg.Accounts.BcryptCost, fc.Accounts.BcryptCost)
	set(&cfg.Accounts.TeamPickSeed, fc.Accounts.TeamPickSeed)

	set(&cfg.RateLimit.AuthPerMinute, fc.RateLimit.AuthPerMinute)
	set(&cfg.RateLimit.PublicPerMinute, fc.RateLimit.PublicPerMinute)
	if fc.RateLimit.TrustedProxyCIDRs != nil {
		cfg.RateLimit.TrustedProxyCIDRs = fc.RateLimit.TrustedProxyCIDRs
	}
	if fc.CORS.AllowedOrigins != nil {
		cfg.CORS.AllowedOrigins = fc.CORS.AllowedOrigins
	}

	set(&cfg.Logging.Level, fc.Logging.Level)
	set(&cfg.Logging.Format, fc.Logging.Format)

	set(&cfg.Tracing.Enabled, fc.Tracing.Enabled)
	set(&cfg.Tracing.Exporter, fc.Tracing.Exporter)
	set(&cfg.Tracing.ServiceName, fc.Tracing.ServiceName)
	set(&cfg.Tracing.OTLPEndpoint, fc.Tracing.OTLPEndpoint)
	set(&cfg.Tracing.SampleRate, fc.Tracing.SampleRate)

	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
