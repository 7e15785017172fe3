package collector

import (
	"context"
	"testing"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/metrics"
	"github.com/stretchr/testify/require"
)

// mockExecutor answers from a fixed table and records every command.
// Commands missing from the table are rejected the way the switch rejects
// unknown API commands.
type mockExecutor struct {
	responses map[string]string
	errs      map[string]error
	panics    map[string]bool
	calls     []string
}

func (m *mockExecutor) API(_ context.Context, command string) (string, error) {
	m.calls = append(m.calls, command)

	if m.panics[command] {
		panic("boom: " + command)
	}
	if err, ok := m.errs[command]; ok {
		return "", err
	}
	if resp, ok := m.responses[command]; ok {
		return resp, nil
	}

	return "", errors.New().WithData(errors.ErrCommandRejected, "-ERR "+command+" Command not found!")
}

func (m *mockExecutor) count(command string) int {
	n := 0
	for _, c := range m.calls {
		if c == command {
			n++
		}
	}
	return n
}

func newTestCycle(exec Executor) *cycle {
	cy := &cycle{exec: exec, cfg: DefaultConfig()}
	cy.modules = &moduleInventory{cycle: cy}
	return cy
}

// render encodes each metric so expectations read like the emitted output.
func render(ms []metrics.Metric) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}

func metricsLine(t *testing.T, measurement string, stats *jitterStats) string {
	t.Helper()

	line, err := metrics.New(measurement, stats.fields()).Line()
	require.NoError(t, err)
	return line
}
