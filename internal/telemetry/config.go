package telemetry

import (
	"io"
	"os"

	"codeberg.org/mutker/fstelegraf/internal/errors"
)

type Config struct {
	// Out receives the encoded records. Closing the sink does not close it.
	Out io.Writer
}

func DefaultConfig() Config {
	return Config{
		Out: os.Stdout,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.Out == nil {
		return errFactory.New(ErrNoOutput)
	}
	return nil
}
