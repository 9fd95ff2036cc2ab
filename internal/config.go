package internal

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type RunEnv string

const (
	Development RunEnv = "development"
	Production  RunEnv = "production"
)

type Config struct {
	Env          RunEnv        `envconfig:"ENV" default:"development"`
	EchoAddr     string        `envconfig:"ECHO_ADDR" default:":8080"`
	GProfilerUrl string        `envconfig:"GPROFILER_URL" default:"http://biit.cs.ut.ee/gprofiler/"`
	MaxUrlLen    int           `envconfig:"GPROFILER_MAX_URL_LEN" default:"4096"`
	Timeout      time.Duration `envconfig:"GPROFILER_TIMEOUT" default:"30s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as defaults.
func (c *Config) Validate() error {
	if c.GProfilerUrl == "" {
		return fmt.Errorf("GPROFILER_URL must not be empty")
	}
	if c.MaxUrlLen <= 0 {
		return fmt.Errorf("GPROFILER_MAX_URL_LEN must be positive, got %d", c.MaxUrlLen)
	}
	return nil
}
