package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	Guide        GuideConfig        `yaml:"guide" mapstructure:"guide"`
	Neighborhood NeighborhoodConfig `yaml:"neighborhood" mapstructure:"neighborhood"`
	Theme        ThemeConfig        `yaml:"theme" mapstructure:"theme"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// GuideConfig configures the upstream guide generator and the initial load.
type GuideConfig struct {
	BaseURL                 string  `yaml:"base_url" mapstructure:"base_url"`
	Live                    bool    `yaml:"live" mapstructure:"live"`
	LatencyMS               int     `yaml:"latency_ms" mapstructure:"latency_ms"`
	TimeoutSecs             int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLHours           int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	RatePerSec              float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	CircuitFailureThreshold int     `yaml:"circuit_failure_threshold" mapstructure:"circuit_failure_threshold"`
	CircuitResetSecs        int     `yaml:"circuit_reset_secs" mapstructure:"circuit_reset_secs"`
}

// Latency returns the initial-load delay.
func (g GuideConfig) Latency() time.Duration {
	return time.Duration(g.LatencyMS) * time.Millisecond
}

// Timeout returns the upstream HTTP timeout.
func (g GuideConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// CacheTTL returns how long live guides are cached.
func (g GuideConfig) CacheTTL() time.Duration {
	return time.Duration(g.CacheTTLHours) * time.Hour
}

// CircuitReset returns the breaker cooldown.
func (g GuideConfig) CircuitReset() time.Duration {
	return time.Duration(g.CircuitResetSecs) * time.Second
}

// NeighborhoodConfig configures the neighborhood finder.
type NeighborhoodConfig struct {
	CatalogPath     string `yaml:"catalog_path" mapstructure:"catalog_path"`
	MaxCommute      int    `yaml:"max_commute" mapstructure:"max_commute"`
	MaxRent         int    `yaml:"max_rent" mapstructure:"max_rent"`
	SearchLatencyMS int    `yaml:"search_latency_ms" mapstructure:"search_latency_ms"`
}

// SearchLatency returns the simulated geocoding delay.
func (n NeighborhoodConfig) SearchLatency() time.Duration {
	return time.Duration(n.SearchLatencyMS) * time.Millisecond
}

// ThemeConfig configures theme preference storage.
type ThemeConfig struct {
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CITYGUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "city-guide.db")
	v.SetDefault("guide.base_url", "https://city-guide-backend.onrender.com/api")
	v.SetDefault("guide.live", false)
	v.SetDefault("guide.latency_ms", 1500)
	v.SetDefault("guide.timeout_secs", 30)
	v.SetDefault("guide.cache_ttl_hours", 24)
	v.SetDefault("guide.rate_per_sec", 2)
	v.SetDefault("guide.circuit_failure_threshold", 5)
	v.SetDefault("guide.circuit_reset_secs", 30)
	v.SetDefault("neighborhood.catalog_path", "")
	v.SetDefault("neighborhood.max_commute", 60)
	v.SetDefault("neighborhood.max_rent", 3000)
	v.SetDefault("neighborhood.search_latency_ms", 1200)
	v.SetDefault("theme.cookie_name", "cg_client")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings needed by mode ("serve" or "cli").
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Theme.CookieName == "" {
			errs = append(errs, "theme.cookie_name is required")
		}
	case "cli":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for postgres")
		}
	default:
		errs = append(errs, "store.driver must be sqlite or postgres")
	}

	if c.Guide.BaseURL == "" {
		errs = append(errs, "guide.base_url is required")
	}
	if c.Guide.LatencyMS < 0 || c.Neighborhood.SearchLatencyMS < 0 {
		errs = append(errs, "latency values must be >= 0")
	}
	if c.Guide.RatePerSec < 0 {
		errs = append(errs, "guide.rate_per_sec must be >= 0")
	}
	if c.Neighborhood.MaxCommute < 0 || c.Neighborhood.MaxRent < 0 {
		errs = append(errs, "neighborhood budgets must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
