package config

import (
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"net"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration. It is loaded once on startup.
type Config struct {
	Database Database `yaml:"database"`
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
}

// HTTP defines the listener of the API.
type HTTP struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port" default:"3000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

// Addr returns the listen address.
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Logging defines the logger.
type Logging struct {
	Level       string `yaml:"level" default:"info"`
	Development bool   `yaml:"development"`
}

// ZapLevel parses Level.
func (l Logging) ZapLevel() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", l.Level)
	}

	return level, nil
}

// Load builds the configuration from defaults, the optional config file and the flags,
// in ascending order of precedence.
func Load(f *Flags) (*Config, error) {
	cfg := &Config{}

	if f.Config != "" {
		var err error
		if cfg, err = FromYAMLFile(f.Config); err != nil {
			return nil, err
		}
	} else if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "can't set config defaults")
	}

	f.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// FromYAMLFile returns a new Config value created from the given YAML config file.
func FromYAMLFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "can't open config file")
	}
	defer f.Close()

	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "can't set config defaults")
	}

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return nil, errors.Wrapf(err, "can't parse config file %s", name)
	}

	return c, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("invalid http port %d", c.HTTP.Port)
	}

	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}

	return nil
}
