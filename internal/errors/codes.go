package errors

// Common error codes
const (
	// System errors
	ErrInternal    ErrorCode = "internal_error"
	ErrUnavailable ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Control channel errors
	ErrConnect         ErrorCode = "esl_connect_failed"
	ErrAuthFailed      ErrorCode = "esl_auth_failed"
	ErrProtocol        ErrorCode = "esl_protocol_error"
	ErrCommandRejected ErrorCode = "command_rejected"

	// Collection errors
	ErrCollectMetrics  ErrorCode = "collect_metrics_failed"
	ErrMalformedReport ErrorCode = "malformed_report"

	// Process errors
	ErrAlreadyRunning ErrorCode = "already_running"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrUnavailable:     "Service unavailable",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read config file",
	ErrInvalidLogLevel: "Invalid log level",
	ErrConnect:         "Failed to connect to event socket",
	ErrAuthFailed:      "Event socket authentication failed",
	ErrProtocol:        "Unexpected event socket message",
	ErrCommandRejected: "Command rejected by switch",
	ErrCollectMetrics:  "Failed to collect metrics data",
	ErrMalformedReport: "Malformed report",
	ErrAlreadyRunning:  "Another collection is already running",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
