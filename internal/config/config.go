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
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the two source files.
type DataConfig struct {
	SummitsPath    string `yaml:"summits_path" mapstructure:"summits_path"`
	CountiesPath   string `yaml:"counties_path" mapstructure:"counties_path"`
	CountiesFormat string `yaml:"counties_format" mapstructure:"counties_format"`
}

// FetchConfig configures the summits CSV download.
type FetchConfig struct {
	SummitsURL  string `yaml:"summits_url" mapstructure:"summits_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig configures the joined-row snapshot cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the settings a command depends on are usable.
// Mode is the command name: "join", "fetch", or "serve".
func (c *Config) Validate(mode string) error {
	var missing []string

	checkData := func() {
		if c.Data.SummitsPath == "" {
			missing = append(missing, "data.summits_path is required")
		}
		if c.Data.CountiesPath == "" {
			missing = append(missing, "data.counties_path is required")
		}
		if c.Data.CountiesFormat != "geojson" && c.Data.CountiesFormat != "shapefile" {
			missing = append(missing, "data.counties_format must be geojson or shapefile")
		}
	}

	switch mode {
	case "join":
		checkData()
	case "fetch":
		if c.Fetch.SummitsURL == "" {
			missing = append(missing, "fetch.summits_url is required")
		}
		if c.Data.SummitsPath == "" {
			missing = append(missing, "data.summits_path is required")
		}
	case "serve":
		checkData()
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SOTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.summits_path", "w-summits.csv")
	v.SetDefault("data.counties_path", "counties.json")
	v.SetDefault("data.counties_format", "geojson")
	v.SetDefault("fetch.summits_url", "https://storage.sota.org.uk/summitslist.csv")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "sota-us-counties/1.0")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "summits-cache.db")
	v.SetDefault("server.port", 8080)
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
