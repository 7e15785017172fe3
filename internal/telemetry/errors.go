package telemetry

import "codeberg.org/mutker/fstelegraf/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrNoOutput      = errors.ErrorCode("telemetry_no_output")

	// Emit Errors
	ErrInvalidSnapshot = errors.ErrorCode("telemetry_invalid_snapshot")
	ErrWriteFailed     = errors.ErrorCode("telemetry_write_failed")
	ErrSinkClosed      = errors.ErrorCode("telemetry_sink_closed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
)
