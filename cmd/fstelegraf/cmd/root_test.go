package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/esl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	responses map[string]string
	dialed    esl.Config
	closed    bool
}

func (f *fakeSession) API(_ context.Context, command string) (string, error) {
	if resp, ok := f.responses[command]; ok {
		return resp, nil
	}
	return "", errors.New().New(errors.ErrCommandRejected)
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func useSession(t *testing.T, f *fakeSession, dialErr error) {
	t.Helper()

	orig := dialSession
	dialSession = func(_ context.Context, cfg esl.Config) (session, error) {
		f.dialed = cfg
		if dialErr != nil {
			return nil, dialErr
		}
		return f, nil
	}
	t.Cleanup(func() { dialSession = orig })
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommandVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	stdout, _, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "fstelegraf version 1.2.3")
	assert.Contains(t, stdout, "abc123")
	assert.Contains(t, stdout, "2026-01-01")
}

func TestRootCommandEmitsRecords(t *testing.T) {
	f := &fakeSession{responses: map[string]string{
		"status": "3 session(s) since startup\n1 session(s) - peak 2, last 5min 1\n",
	}}
	useSession(t, f, nil)

	stdout, _, err := execute(t, "--host", "10.0.0.9", "-p", "8022", "-s", "secret", "--log-level", "error")

	require.NoError(t, err)
	assert.Equal(t, "freeswitch_sessions total=3,concurrent=1,concurrent_peak=2,concurrent_5min=1", stdout)
	assert.Equal(t, "10.0.0.9:8022", f.dialed.Address)
	assert.Equal(t, "secret", f.dialed.Password)
	assert.True(t, f.closed)
}

func TestRootCommandNothingFound(t *testing.T) {
	f := &fakeSession{}
	useSession(t, f, nil)

	stdout, _, err := execute(t, "--log-level", "error")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.True(t, f.closed)
}

func TestRootCommandConnectFailure(t *testing.T) {
	f := &fakeSession{}
	useSession(t, f, errors.New().New(errors.ErrConnect))

	stdout, stderr, err := execute(t, "--log-level", "error")

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConnect))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error_code=esl_connect_failed")
	assert.False(t, f.closed)
}

func TestRootCommandInvalidLogLevel(t *testing.T) {
	useSession(t, &fakeSession{}, nil)

	_, _, err := execute(t, "--log-level", "verbose")

	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestRootCommandRejectsArguments(t *testing.T) {
	useSession(t, &fakeSession{}, nil)

	_, _, err := execute(t, "extra")

	assert.Error(t, err)
}

func TestRootCommandPIDFile(t *testing.T) {
	f := &fakeSession{}
	useSession(t, f, nil)
	path := filepath.Join(t.TempDir(), "fstelegraf.pid")

	_, _, err := execute(t, "--log-level", "error", "--pid-file", path)

	require.NoError(t, err)
	assert.True(t, f.closed)
	assert.NoFileExists(t, path)
}

func TestRootCommandRefusesOverlappingRun(t *testing.T) {
	f := &fakeSession{}
	useSession(t, f, nil)
	path := filepath.Join(t.TempDir(), "fstelegraf.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o600))

	_, _, err := execute(t, "--log-level", "error", "--pid-file", path)

	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))
	assert.Empty(t, f.dialed.Address)
	assert.FileExists(t, path)
}
