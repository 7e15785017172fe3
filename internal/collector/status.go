package collector

import (
	"context"
	"regexp"
	"strconv"

	"codeberg.org/mutker/fstelegraf/internal/metrics"
)

const (
	cmdStatus          = "status"
	measurementSession = "freeswitch_sessions"
)

// Each pattern runs once over the whole report; "." does not cross lines.
var (
	totalSessionsRe = regexp.MustCompile(`(?i)(\d+).+session.+since.+startup`)
	concurrentRe    = regexp.MustCompile(`(?i)\n(\d+).+-\s+peak\s+(\d+).+5min\s+(\d+)`)
	perSecondRe     = regexp.MustCompile(`(?i)\n(\d+).+per\s+Sec.+peak\s+(\d+).+5min\s+(\d+)`)
)

func collectCoreStatus(ctx context.Context, cy *cycle) []metrics.Metric {
	status, ok := cy.api(ctx, cmdStatus)
	if !ok {
		return nil
	}

	fields := parseStatus(status)
	if len(fields) == 0 {
		return nil
	}

	return []metrics.Metric{metrics.New(measurementSession, fields)}
}

// parseStatus extracts session counters from a "status" report such as
//
//	12 session(s) since startup
//	2 session(s) - peak 5, last 5min 3
//	0 session(s) per Sec out of max 30, peak 4, last 5min 1
func parseStatus(text string) metrics.Fields {
	var fields metrics.Fields

	if m := totalSessionsRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseInts(m[1:]); ok {
			fields.Set("total", n[0])
		}
	}

	if m := concurrentRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseInts(m[1:]); ok {
			fields.Set("concurrent", n[0])
			fields.Set("concurrent_peak", n[1])
			fields.Set("concurrent_5min", n[2])
		}
	}

	if m := perSecondRe.FindStringSubmatch(text); m != nil {
		if n, ok := parseInts(m[1:]); ok {
			fields.Set("per_second", n[0])
			fields.Set("per_second_peak", n[1])
			fields.Set("per_second_5min", n[2])
		}
	}

	return fields
}

// parseInts converts every string or reports false if any is out of range.
func parseInts(ss []string) ([]int64, bool) {
	out := make([]int64, 0, len(ss))
	for _, s := range ss {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}

	return out, true
}
