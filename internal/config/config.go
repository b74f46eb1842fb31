package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Flood  FloodConfig  `yaml:"flood" mapstructure:"flood"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the SQLite backend.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScrapeConfig configures the listings scraper.
type ScrapeConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	PageDelaySecs     int     `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
	MaxPages          int     `yaml:"max_pages" mapstructure:"max_pages"`
	Concurrency       int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// FloodConfig configures the flood-zone evaluation.
type FloodConfig struct {
	ZonesPath string `yaml:"zones_path" mapstructure:"zones_path"`
	Folder    string `yaml:"folder" mapstructure:"folder"`
	Workers   int    `yaml:"workers" mapstructure:"workers"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SINKRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "listings.db")
	v.SetDefault("scrape.base_url", "https://glue-api.zapimoveis.com.br/v2/listings")
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.max_retries", 3)
	v.SetDefault("scrape.requests_per_second", 0.5)
	v.SetDefault("scrape.page_delay_secs", 2)
	v.SetDefault("scrape.max_pages", 500)
	v.SetDefault("scrape.concurrency", 2)
	v.SetDefault("flood.zones_path", "cheias_em_porto_alegre.kml")
	v.SetDefault("flood.folder", "Inundação simulada com nível 500 cm (5.0 m)")
	v.SetDefault("flood.workers", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
