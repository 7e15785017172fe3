package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

// Sink receives the records of one collection cycle.
type Sink interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is the output of one collection cycle. CollectedAt is when the
// cycle started; it is required.
type Snapshot struct {
	CollectedAt time.Time
	Metrics     []metrics.Metric
}
