package esl

import (
	"time"

	"codeberg.org/mutker/fstelegraf/internal/errors"
)

const (
	defaultTimeout         = 5 * time.Second
	defaultMaxResponseSize = 4 << 20
)

type Config struct {
	Address  string
	Password string
	Timeout  time.Duration
	// MaxResponseSize bounds an accepted api response body in bytes.
	MaxResponseSize int
}

func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New().WithMessage(errors.ErrInvalidConfig, "event socket address is empty")
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) maxResponseSize() int {
	if c.MaxResponseSize <= 0 {
		return defaultMaxResponseSize
	}
	return c.MaxResponseSize
}
