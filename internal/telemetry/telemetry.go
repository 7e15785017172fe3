// Package telemetry emits collected records as influx line protocol.
package telemetry

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

// lineSink writes each snapshot as line protocol in a single write, so a
// reader never sees part of a cycle.
type lineSink struct {
	out io.Writer

	mu     sync.Mutex
	closed bool
}

func NewService(cfg Config) (Sink, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	return &lineSink{out: cfg.Out}, nil
}

func (s *lineSink) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	if snapshot == nil || snapshot.CollectedAt.IsZero() {
		return errFactory.New(ErrInvalidSnapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errFactory.New(ErrSinkClosed)
	}
	if len(snapshot.Metrics) == 0 {
		logger.Debug().Time("collected_at", snapshot.CollectedAt).Msg("Nothing to emit")
		return nil
	}

	var buf bytes.Buffer
	if err := metrics.Encode(&buf, snapshot.Metrics); err != nil {
		return errFactory.Wrap(ErrInvalidSnapshot, err)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	logger.Debug().
		Time("collected_at", snapshot.CollectedAt).
		Dur("cycle", time.Since(snapshot.CollectedAt)).
		Int("records", len(snapshot.Metrics)).
		Int("bytes", buf.Len()).
		Msg("Emitted snapshot")

	return nil
}

func (s *lineSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
