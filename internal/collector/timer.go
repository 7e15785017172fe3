package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

const (
	cmdTimerTest      = "timer_test %d %d %s"
	measurementTiming = "freeswitch_core_timing"

	timerSampleFields = 4
	msToMicro         = 1000
)

var timerAvgRe = regexp.MustCompile(`Avg:\s*(\d+(?:\.\d+)?)`)

// timerSample is one "timer;iter;target;value" line of a self-test report.
type timerSample struct {
	Timer  string
	Iter   int
	Target float64
	Value  float64
}

// jitterStats summarises one timer self-test. Values are microseconds.
type jitterStats struct {
	threshold50  float64
	threshold100 float64

	samples int
	min     float64
	max     float64

	avg    float64
	hasAvg bool

	over50  int64
	over100 int64
}

func newJitterStats(intervalMS int) *jitterStats {
	return &jitterStats{
		threshold50:  float64(intervalMS) * 1.5 * msToMicro,
		threshold100: float64(intervalMS) * 2 * msToMicro,
	}
}

func (s *jitterStats) add(value float64) {
	if s.samples == 0 || value < s.min {
		s.min = value
	}
	if s.samples == 0 || value > s.max {
		s.max = value
	}
	s.samples++

	switch {
	case value >= s.threshold100:
		s.over100++
	case value >= s.threshold50:
		s.over50++
	}
}

func (s *jitterStats) empty() bool {
	return s.samples == 0 && !s.hasAvg
}

// minTime is reported as zero when no sample was observed.
func (s *jitterStats) minTime() int64 {
	if s.samples == 0 {
		return 0
	}
	return int64(math.Round(s.min))
}

func (s *jitterStats) fields() metrics.Fields {
	return metrics.Fields{
		{Key: "min_time", Value: s.minTime()},
		{Key: "max_time", Value: int64(math.Round(s.max))},
		{Key: "avg_time", Value: int64(math.Round(s.avg))},
		{Key: "percent_higher_50_count", Value: s.over50},
		{Key: "percent_higher_100_count", Value: s.over100},
	}
}

func collectCoreTiming(ctx context.Context, cy *cycle) []metrics.Metric {
	var out []metrics.Metric
	for _, mod := range cy.modules.timers(ctx) {
		cmd := fmt.Sprintf(cmdTimerTest, cy.cfg.TimerInterval, cy.cfg.TimerSamples, mod.Name)
		report, ok := cy.api(ctx, cmd)
		if !ok {
			continue
		}

		stats, err := parseTimerReport(report, cy.cfg.TimerInterval)
		if err != nil {
			// A broken summary line means the report format itself changed;
			// stop testing the remaining timers.
			logger.Warn().Err(err).Str("timer", mod.Name).Msg("Aborting timer collection")
			return out
		}
		if stats.empty() {
			continue
		}

		out = append(out, metrics.New(measurementTiming, stats.fields(), metrics.Tag{Key: "timer", Value: mod.Name}))
	}

	return out
}

// parseTimerReport folds sample lines until the "Avg:" summary line, which
// ends the report. A summary without a number is an error.
func parseTimerReport(text string, intervalMS int) (*jitterStats, error) {
	stats := newJitterStats(intervalMS)

	for _, line := range lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "Avg:") {
			m := timerAvgRe.FindStringSubmatch(line)
			if m == nil {
				return nil, errors.New().WithData(errors.ErrMalformedReport, line)
			}
			ms, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, errors.New().Wrap(errors.ErrMalformedReport, err)
			}
			stats.avg = ms * msToMicro
			stats.hasAvg = true
			break
		}

		sample, ok := parseTimerSample(line)
		if !ok {
			logger.Debug().Str("line", line).Msg("Skipping malformed timer sample")
			continue
		}
		stats.add(sample.Value)
	}

	return stats, nil
}

func parseTimerSample(line string) (timerSample, bool) {
	cols := strings.Split(line, ";")
	if len(cols) != timerSampleFields {
		return timerSample{}, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(cols[3]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return timerSample{}, false
	}

	sample := timerSample{
		Timer: strings.TrimSpace(cols[0]),
		Value: value,
	}
	// iter and target are informational only
	sample.Iter, _ = strconv.Atoi(strings.TrimSpace(cols[1]))
	sample.Target, _ = strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)

	return sample, true
}
