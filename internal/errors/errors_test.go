package errors_test

import (
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryMessages(t *testing.T) {
	f := errors.New()

	err := f.New(errors.ErrUnavailable)
	assert.Equal(t, "Service unavailable", err.Error())
	assert.Equal(t, errors.ErrUnavailable, err.Code())

	err = f.WithMessage(errors.ErrProtocol, "unexpected content type")
	assert.Equal(t, "unexpected content type", err.Error())

	err = f.WithData(errors.ErrCommandRejected, "-ERR no such command")
	assert.Equal(t, "Command rejected by switch: -ERR no such command", err.Error())
	assert.Equal(t, "-ERR no such command", err.GetData())
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	err := errors.New().New(errors.ErrorCode("something_odd"))
	assert.Equal(t, "something_odd", err.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset by peer")
	err := errors.New().Wrap(errors.ErrUnavailable, cause)

	assert.Equal(t, "Service unavailable: connection reset by peer", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestWithMessageKeepsCause(t *testing.T) {
	cause := stderrors.New("eof")
	err := errors.New().Wrap(errors.ErrAuthFailed, cause).WithMessage("auth rejected")

	assert.Equal(t, "auth rejected: eof", err.Error())
	assert.Equal(t, errors.ErrAuthFailed, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrCommandRejected)
	outer := f.Wrap(errors.ErrCollectMetrics, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrCollectMetrics))
	assert.True(t, errors.HasCode(outer, errors.ErrCommandRejected))
	assert.False(t, errors.HasCode(outer, errors.ErrUnavailable))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrUnavailable))
	assert.False(t, errors.HasCode(nil, errors.ErrUnavailable))
}
