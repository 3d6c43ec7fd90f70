// Package config loads run settings from flags, environment and an optional
// config file.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "EDGEDRIVER_MANIFEST"

	DefaultURL       = "https://msedgedriver.azureedge.net"
	DefaultDir       = "dist"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	KeyURL       = "url"
	KeyUserAgent = "user-agent"
	KeyDir       = "dir"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

var logFormats = []string{"text", "json"}

type Config struct {
	URL       string        `mapstructure:"url"`
	UserAgent string        `mapstructure:"user-agent"`
	Dir       string        `mapstructure:"dir"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
}

// DefaultUserAgent identifies this tool in requests to the manifest host.
func DefaultUserAgent(version string) string {
	return "edgedriver-manifest " + version
}

// RegisterFlags adds every setting as a flag on fs.
func RegisterFlags(fs *pflag.FlagSet, version string) {
	fs.String(KeyURL, DefaultURL, "URL of the blob listing to sync")
	fs.String(KeyUserAgent, DefaultUserAgent(version), "User-Agent header sent with the request")
	fs.String(KeyDir, DefaultDir, "Output directory, removed and recreated on every run")
	fs.Duration(KeyTimeout, 0, "HTTP client timeout, 0 for none")
	fs.String(KeyLogLevel, DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, DefaultLogFormat, "Log format (text, json)")
}

// Load resolves the configuration. Precedence is flags set on the command
// line, then EDGEDRIVER_MANIFEST_* variables, then the config file, then
// flag defaults.
func Load(v *viper.Viper, fs *pflag.FlagSet, configFile string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("Loaded config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.URL == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyURL))
	} else if u, err := url.Parse(c.URL); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s is invalid: %w", KeyURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		result = multierror.Append(result, fmt.Errorf("%s must use http or https, got %q", KeyURL, c.URL))
	} else if u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("%s has no host: %q", KeyURL, c.URL))
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyUserAgent))
	}

	if strings.TrimSpace(c.Dir) == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyDir))
	}

	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("%s must not be negative, got %s", KeyTimeout, c.Timeout))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s is invalid: %w", KeyLogLevel, err))
	}

	if !isLogFormat(c.LogFormat) {
		result = multierror.Append(result, fmt.Errorf("%s must be one of %s, got %q", KeyLogFormat, strings.Join(logFormats, ", "), c.LogFormat))
	}

	return result.ErrorOrNil()
}

func isLogFormat(format string) bool {
	for _, f := range logFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigureLogging applies the log settings to the standard logger.
func (c *Config) ConfigureLogging(logger *log.Logger) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if c.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
