package metrics

import "codeberg.org/mutker/fstelegraf/internal/errors"

const (
	ErrEmptyFields        = errors.ErrorCode("metrics_empty_fields")
	ErrInvalidMeasurement = errors.ErrorCode("metrics_invalid_measurement")
	ErrEncode             = errors.ErrorCode("metrics_encode_failed")
)
