package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultURLTemplate is the GeoNames postal code export location. %s is the country code.
const DefaultURLTemplate = "https://download.geonames.org/export/zip/%s.zip"

// Config holds the full application configuration.
type Config struct {
	Geonames GeonamesConfig `yaml:"geonames" mapstructure:"geonames"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// GeonamesConfig configures where postal code datasets come from.
type GeonamesConfig struct {
	URLTemplate  string   `yaml:"url_template" mapstructure:"url_template"`
	CountryCodes []string `yaml:"country_codes" mapstructure:"country_codes"`
	SkipEntries  []string `yaml:"skip_entries" mapstructure:"skip_entries"`
	Encoding     string   `yaml:"encoding" mapstructure:"encoding"`
	UserAgent    string   `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries   int      `yaml:"max_retries" mapstructure:"max_retries"`
}

// OutputConfig configures the generated city file.
type OutputConfig struct {
	File string `yaml:"file" mapstructure:"file"`
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
	v.SetEnvPrefix("CITYFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geonames.url_template", DefaultURLTemplate)
	v.SetDefault("geonames.country_codes", []string{"US"})
	v.SetDefault("geonames.skip_entries", []string{"readme.txt"})
	v.SetDefault("geonames.encoding", "utf-8")
	v.SetDefault("geonames.user_agent", "cityfile/1.0")
	v.SetDefault("geonames.timeout_secs", 300)
	v.SetDefault("geonames.max_retries", 1)
	v.SetDefault("output.file", "cities.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

	// A comma-separated env value arrives as a single element.
	cfg.Geonames.CountryCodes = SplitCodes(strings.Join(cfg.Geonames.CountryCodes, ","))

	return &cfg, nil
}

// Validate checks the settings every generate run depends on.
func (c *Config) Validate() error {
	if c.Output.File == "" {
		return eris.New("config: output.file is required")
	}
	return nil
}

// Validate checks the settings needed to download archives. It does not
// apply when a local file is imported instead.
func (g GeonamesConfig) Validate() error {
	var missing []string
	if g.URLTemplate == "" {
		missing = append(missing, "geonames.url_template is required")
	} else if !strings.Contains(g.URLTemplate, "%s") {
		missing = append(missing, "geonames.url_template must contain %s")
	}
	if g.MaxRetries < 1 {
		missing = append(missing, "geonames.max_retries must be at least 1")
	}
	if len(g.CountryCodes) == 0 {
		missing = append(missing, "at least one country code is required")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// SplitCodes splits a comma-separated country code list, trimming blanks.
func SplitCodes(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
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
