package config

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cognicore/semilabel/pkg/semilabel/match"
)

// EnvPrefix prefixes environment overrides, e.g. SEMILABEL_LOG_LEVEL.
const EnvPrefix = "SEMILABEL"

// Settings are the run-level knobs read by viper.
type Settings struct {
	Rules     string      `mapstructure:"rules"`
	Threshold float64     `mapstructure:"threshold"`
	Workers   int         `mapstructure:"workers"`
	Features  bool        `mapstructure:"features"`
	Log       LogSettings `mapstructure:"log"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
}

// LoadSettings reads path (optional) and applies environment overrides on
// top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("rules", "")
	v.SetDefault("threshold", match.DefaultThreshold)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("features", false)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read settings %s", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}
	if s.Threshold <= 0 || s.Threshold > 1 {
		return nil, errors.Errorf("threshold %v is outside (0, 1]", s.Threshold)
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	return &s, nil
}
