package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable overrides, e.g. RENTBUY_WORKERS.
const EnvPrefix = "RENTBUY"

// Settings controls how the CLI runs, as opposed to what it computes.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
	Workers   int    `mapstructure:"workers"`
	Format    string `mapstructure:"format"`
	OutputDir string `mapstructure:"output_dir"`
}

// settingFlags maps setting keys to the CLI flags that override them.
var settingFlags = map[string]string{
	"log_level":  "log-level",
	"log_format": "log-format",
	"log_file":   "log-file",
	"workers":    "workers",
	"format":     "format",
	"output_dir": "output",
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "console",
		Workers:   10,
		Format:    "console",
	}
}

// LoadSettings layers defaults, an optional settings file, RENTBUY_*
// environment variables and any changed flags in flags, in that order.
// An empty path skips the file.
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("output_dir", defaults.OutputDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range settingFlags {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if settings.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", settings.Workers)
	}
	return &settings, nil
}
