package collector

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/logger"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

const (
	cmdConferenceList    = "conference list"
	cmdConferenceMembers = "conference %s debug all members"
	cmdConferenceLoop    = "conference %s debug loop"

	measurementConference = "freeswitch_conference_metrics"

	memberRowFields = 14
)

var (
	conferenceNameRe = regexp.MustCompile(`^\+OK\s+Conference\s+(\S+)`)
	leadingIntRe     = regexp.MustCompile(`^-?\d+`)
)

// counter is one numeric column of a member row; valid is false when the
// column did not hold a number.
type counter struct {
	value int64
	valid bool
}

// memberSnapshot is one row of the "debug all members" report.
type memberSnapshot struct {
	ID   string
	UUID string

	InputBuflen  counter
	InputFrames  counter
	InputFlushes counter
	InputHiccups counter
	InputMaxTime counter
	InputAvgTime counter

	OutputBuflen  counter
	OutputFrames  counter
	OutputFlushes counter
	OutputHiccups counter
	OutputMaxTime counter
	OutputAvgTime counter
}

// Column names in report order, matching counters().
var memberCounterNames = [...]string{
	"input_buflen",
	"input_frames",
	"input_flushes",
	"input_hiccups",
	"input_max_time",
	"input_avg_time",
	"output_buflen",
	"output_frames",
	"output_flushes",
	"output_hiccups",
	"output_max_time",
	"output_avg_time",
}

func (s *memberSnapshot) counters() [len(memberCounterNames)]*counter {
	return [...]*counter{
		&s.InputBuflen,
		&s.InputFrames,
		&s.InputFlushes,
		&s.InputHiccups,
		&s.InputMaxTime,
		&s.InputAvgTime,
		&s.OutputBuflen,
		&s.OutputFrames,
		&s.OutputFlushes,
		&s.OutputHiccups,
		&s.OutputMaxTime,
		&s.OutputAvgTime,
	}
}

// maxAccumulator keeps the per-column maximum over member rows, starting
// from zero.
type maxAccumulator struct {
	max memberSnapshot
}

func (a *maxAccumulator) fold(row memberSnapshot) {
	acc := a.max.counters()
	for i, c := range row.counters() {
		if c.valid && c.value > acc[i].value {
			acc[i].value = c.value
		}
	}
}

func (a *maxAccumulator) fields() metrics.Fields {
	fields := make(metrics.Fields, 0, len(memberCounterNames))
	for i, c := range a.max.counters() {
		fields = append(fields, metrics.Field{Key: "max_" + memberCounterNames[i], Value: c.value})
	}
	return fields
}

func collectConferences(ctx context.Context, cy *cycle) []metrics.Metric {
	list, ok := cy.api(ctx, cmdConferenceList)
	if !ok {
		return nil
	}

	var out []metrics.Metric
	for _, conf := range parseConferenceList(list) {
		members, ok := cy.api(ctx, fmt.Sprintf(cmdConferenceMembers, conf))
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(members), "not found") {
			logger.Debug().Str("conference", conf).Msg("Conference vanished before member query")
			continue
		}

		var acc maxAccumulator
		for _, line := range lines(members) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			row, ok := parseMemberRow(line)
			if !ok {
				logger.Debug().Str("conference", conf).Str("line", line).Msg("Skipping malformed member row")
				continue
			}
			acc.fold(row)
		}

		fields := acc.fields()
		if loop, ok := cy.api(ctx, fmt.Sprintf(cmdConferenceLoop, conf)); ok {
			fields = append(fields, parseLoopReport(loop)...)
		}

		out = append(out, metrics.New(measurementConference, fields, metrics.Tag{Key: "confname", Value: conf}))
	}

	return out
}

// parseConferenceList returns the identifier of every conference header in a
// "conference list" report. Member rows listed under a header are ignored,
// even when a caller name contains "Conference".
//
//	+OK Conference 3000 (2 members rate: 8000 flags: running|answered)
//	1;sofia/internal/1000@10.0.0.5;3b5c8a2e;Conference Bridge;1000;hear|speak;0;0;100
func parseConferenceList(text string) []string {
	var names []string
	for _, line := range lines(text) {
		if m := conferenceNameRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			names = append(names, m[1])
		}
	}

	return names
}

// parseMemberRow splits a semicolon-delimited member row. Rows without
// exactly 14 columns are rejected; a non-numeric counter is marked invalid
// without rejecting the row.
func parseMemberRow(line string) (memberSnapshot, bool) {
	cols := strings.Split(strings.TrimSpace(line), ";")
	if len(cols) != memberRowFields {
		return memberSnapshot{}, false
	}

	row := memberSnapshot{
		ID:   strings.TrimSpace(cols[0]),
		UUID: strings.TrimSpace(cols[1]),
	}
	for i, c := range row.counters() {
		*c = parseCounter(cols[i+2])
	}

	return row, true
}

func parseCounter(s string) counter {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return counter{value: n, valid: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && math.Abs(f) < math.MaxInt64 {
		return counter{value: int64(f), valid: true}
	}

	return counter{}
}

var loopLabels = map[string]string{
	"time hiccups": "hiccups",
	"max wait":     "max_time",
	"min wait":     "min_time",
	"avg wait":     "avg_time",
}

// parseLoopReport reads the "debug loop" report. Labeled lines belong to the
// most recent "Timer" or "Mixing" header; only the leading integer of each
// value is kept.
//
//	Timer:
//	  Time Hiccups: 0
//	  Max Wait: 21 ms
//	Mixing:
//	  Avg Wait: 3 ms
func parseLoopReport(text string) metrics.Fields {
	var (
		fields metrics.Fields
		prefix string
	)

	for _, line := range lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, value, _ := strings.Cut(line, ":")
		label = strings.ToLower(strings.TrimSpace(label))

		if suffix, ok := loopLabels[label]; ok {
			if prefix == "" {
				continue
			}
			num := leadingIntRe.FindString(strings.TrimSpace(value))
			if num == "" {
				continue
			}
			if n, err := strconv.ParseInt(num, 10, 64); err == nil {
				fields.Set(prefix+suffix, n)
			}
			continue
		}

		switch {
		case strings.HasPrefix(label, "timer"):
			prefix = "timer_"
		case strings.HasPrefix(label, "mixing"):
			prefix = "mixloop_"
		}
	}

	return fields
}
