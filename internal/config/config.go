package config

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "FSTELEGRAF"
	configName = "fstelegraf"
	configType = "toml"

	DefaultHost          = "127.0.0.1"
	DefaultPort          = 8021
	DefaultPassword      = "ClueCon"
	DefaultTimeout       = 5 * time.Second
	DefaultLogLevel      = LogLevelWarning
	DefaultTimerInterval = 20
	DefaultTimerSamples  = 50

	maxTimerSamples = 200
)

// Intervals accepted by the switch's timer self-test.
var validTimerIntervals = []int{10, 20, 40, 60, 120}

type Config struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	Timeout       time.Duration `mapstructure:"timeout"`
	LogLevel      string        `mapstructure:"log_level"`
	TimerInterval int           `mapstructure:"timer_interval"`
	TimerSamples  int           `mapstructure:"timer_samples"`
	ConfigFile    string        `mapstructure:"config"`
	PIDFile       string        `mapstructure:"pid_file"`
}

// Address returns the event socket address in host:port form.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("host", DefaultHost, "FreeSWITCH event socket host")
	fs.IntP("port", "p", DefaultPort, "FreeSWITCH event socket port")
	fs.StringP("secret", "s", DefaultPassword, "FreeSWITCH event socket password")
	fs.Duration("timeout", DefaultTimeout, "Deadline for each command round-trip")
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	fs.String("config", "", "Path to a TOML configuration file")
	fs.Int("timer-interval", DefaultTimerInterval, "Timer self-test interval in milliseconds")
	fs.Int("timer-samples", DefaultTimerSamples, "Timer self-test sample count")
	fs.String("pid-file", "", "Refuse to start while the process recorded in this file is running")
}

// flag name -> config key
var flagKeys = map[string]string{
	"host":           "host",
	"port":           "port",
	"secret":         "password",
	"timeout":        "timeout",
	"log-level":      "log_level",
	"config":         "config",
	"timer-interval": "timer_interval",
	"timer-samples":  "timer_samples",
	"pid-file":       "pid_file",
}

// Load resolves the configuration from, in decreasing priority, changed
// flags, FSTELEGRAF_* environment variables, a TOML file and defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("password", DefaultPassword)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("config", "")
	v.SetDefault("timer_interval", DefaultTimerInterval)
	v.SetDefault("timer_samples", DefaultTimerSamples)
	v.SetDefault("pid_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath("/etc/fstelegraf")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every value and reports the first problem found.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	var problems []ValidationError
	if strings.TrimSpace(c.Host) == "" {
		problems = append(problems, ValidationError{Field: "host", Value: c.Host, Reason: "must not be empty"})
	}
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, ValidationError{Field: "port", Value: c.Port, Reason: "must be between 1 and 65535"})
	}
	if c.Timeout <= 0 {
		problems = append(problems, ValidationError{Field: "timeout", Value: c.Timeout, Reason: "must be positive"})
	}
	if !validTimerInterval(c.TimerInterval) {
		problems = append(problems, ValidationError{
			Field:  "timer_interval",
			Value:  c.TimerInterval,
			Reason: fmt.Sprintf("must be one of %v", validTimerIntervals),
		})
	}
	if c.TimerSamples < 1 || c.TimerSamples > maxTimerSamples {
		problems = append(problems, ValidationError{
			Field:  "timer_samples",
			Value:  c.TimerSamples,
			Reason: fmt.Sprintf("must be between 1 and %d", maxTimerSamples),
		})
	}

	if len(problems) > 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, problems[0].String())
	}

	return nil
}

func validTimerInterval(ms int) bool {
	for _, v := range validTimerIntervals {
		if v == ms {
			return true
		}
	}

	return false
}
