package di

import (
	"github.com/kbukum/scopedi/config"
	"github.com/kbukum/scopedi/logger"
	"github.com/kbukum/scopedi/validation"
)

// Config holds resolver settings.
type Config struct {
	MaxDepth int           `yaml:"max_depth" mapstructure:"max_depth" validate:"min=1,max=1000"`
	Logging  logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the struct tags and the logging section.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// LoadConfig loads, defaults and validates the resolver configuration for
// the named service.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadConfig(name, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
