package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/unitmap/internal/config"
	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/resolver"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog and resolver
	Dataset            string
	Threshold          int
	MinSubstringLength int
	Scorer             string

	// Staff directory
	DirectoryURL       string
	DirectoryTimeout   time.Duration
	DirectoryUserAgent string

	// Server
	APIKey string

	// Logging configuration. LogLevel is set only by --log-level;
	// EnvLogLevel comes from the environment or config file.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// setDefaults registers default values on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("resolver.threshold", resolver.DefaultThreshold)
	v.SetDefault("resolver.min_substring_length", resolver.DefaultMinSubstringLength)
	v.SetDefault("resolver.scorer", resolver.ScorerTokenSort)
	v.SetDefault("directory.url", constants.DirectoryURL)
	v.SetDefault("directory.timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("directory.user_agent", constants.DirectoryUserAgent)
	v.SetDefault("format", "")
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (UNITMAP_ prefix, plus plain LOG_*)
// 3. .env files
// 4. Config file (--config, or .unitmap.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit config file must exist; the search paths are optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	cfg := &Config{
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Dataset:            v.GetString("dataset"),
		Threshold:          v.GetInt("resolver.threshold"),
		MinSubstringLength: v.GetInt("resolver.min_substring_length"),
		Scorer:             v.GetString("resolver.scorer"),

		DirectoryURL:       v.GetString("directory.url"),
		DirectoryTimeout:   v.GetDuration("directory.timeout"),
		DirectoryUserAgent: v.GetString("directory.user_agent"),

		APIKey: config.GetString(v, "api_key"),

		EnvLogLevel: config.GetStringOr(v, "LOG_LEVEL", v.GetString("log_level")),
		LogFormat:   config.GetStringOr(v, "LOG_FORMAT", "auto"),
		LogOutput:   config.GetStringOr(v, "LOG_OUTPUT", "stderr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that Viper cannot express.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return errors.NewValidationError("resolver.threshold", c.Threshold, "must be between 0 and 100")
	}
	if c.MinSubstringLength < 0 {
		return errors.NewValidationError("resolver.min_substring_length", c.MinSubstringLength, "must not be negative")
	}
	if _, err := resolver.ScorerByName(c.Scorer); err != nil {
		return err
	}
	if c.DirectoryTimeout <= 0 {
		return errors.NewValidationError("directory.timeout", c.DirectoryTimeout, "must be positive")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, dataset string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if dataset != "" {
		c.Dataset = dataset
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the process win over both files.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
