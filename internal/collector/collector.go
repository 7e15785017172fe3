// Package collector turns the switch's human-oriented status reports into
// line-protocol metrics. Each report kind has its own extractor; the
// Collector runs them in a fixed order against one command channel.
package collector

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

// Executor runs one administrative command and returns its raw response.
// Any error means the response is unavailable.
type Executor interface {
	API(ctx context.Context, command string) (string, error)
}

const (
	DefaultTimerInterval = 20
	DefaultTimerSamples  = 50
)

type Config struct {
	// TimerInterval is the timer self-test interval in milliseconds.
	TimerInterval int
	// TimerSamples is the number of self-test iterations per timer module.
	TimerSamples int
}

func DefaultConfig() Config {
	return Config{
		TimerInterval: DefaultTimerInterval,
		TimerSamples:  DefaultTimerSamples,
	}
}

func (c Config) withDefaults() Config {
	if c.TimerInterval <= 0 {
		c.TimerInterval = DefaultTimerInterval
	}
	if c.TimerSamples <= 0 {
		c.TimerSamples = DefaultTimerSamples
	}
	return c
}

type extractor struct {
	name string
	run  func(ctx context.Context, cy *cycle) []metrics.Metric
}

// Collector runs every extractor once per Collect call.
type Collector struct {
	exec       Executor
	cfg        Config
	extractors []extractor
}

func New(exec Executor, cfg Config) *Collector {
	return &Collector{
		exec: exec,
		cfg:  cfg.withDefaults(),
		extractors: []extractor{
			{name: "status", run: collectCoreStatus},
			{name: "timing", run: collectCoreTiming},
			{name: "sofia", run: collectSofiaProfiles},
			{name: "conference", run: collectConferences},
		},
	}
}

// Collect runs one collection cycle and returns every record produced, in
// extractor order. It never fails: extractors that find nothing, or panic,
// contribute no records.
func (c *Collector) Collect(ctx context.Context) []metrics.Metric {
	cy := &cycle{exec: c.exec, cfg: c.cfg}
	cy.modules = &moduleInventory{cycle: cy}

	var out []metrics.Metric
	for _, e := range c.extractors {
		ms, err := safeRun(ctx, cy, e)
		if err != nil {
			logger.Warn().Err(err).Str("extractor", e.name).Msg("Extractor failed")
			continue
		}

		n := 0
		for _, m := range ms {
			if len(m.Fields) == 0 {
				logger.Debug().Str("extractor", e.name).Str("measurement", m.Measurement).Msg("Dropping record without fields")
				continue
			}
			out = append(out, m)
			n++
		}
		logger.Debug().Str("extractor", e.name).Int("records", n).Msg("Extractor finished")
	}

	return out
}

// safeRun calls an extractor with panic recovery.
func safeRun(ctx context.Context, cy *cycle, e extractor) (ms []metrics.Metric, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.New().WithData(errors.ErrCollectMetrics, fmt.Sprintf("extractor panicked: %v\n%s", v, debug.Stack()))
		}
	}()
	return e.run(ctx, cy), nil
}

// cycle holds the state of a single collection run.
type cycle struct {
	exec    Executor
	cfg     Config
	modules *moduleInventory
}

// api returns the response to command, or false when it is unavailable,
// rejected or blank.
func (cy *cycle) api(ctx context.Context, command string) (string, bool) {
	resp, err := cy.exec.API(ctx, command)
	if err != nil {
		logger.Debug().Err(err).Str("command", command).Msg("Command unavailable")
		return "", false
	}
	if strings.TrimSpace(resp) == "" {
		logger.Debug().Str("command", command).Msg("Command returned no output")
		return "", false
	}

	return resp, true
}

func lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
