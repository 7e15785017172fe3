package esl

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/fstelegraf/internal/logger"
)

// libraryLogger routes eslgo's printf-style messages into the package
// logger. eslgo reports an ordinary close as a warning, so every level is
// shifted down one step.
type libraryLogger struct{}

func (libraryLogger) Debug(format string, args ...any) {
	logger.Debug().Str("component", "eslgo").Msg(libraryMessage(format, args))
}

func (libraryLogger) Info(format string, args ...any) {
	logger.Debug().Str("component", "eslgo").Msg(libraryMessage(format, args))
}

func (libraryLogger) Warn(format string, args ...any) {
	logger.Info().Str("component", "eslgo").Msg(libraryMessage(format, args))
}

func (libraryLogger) Error(format string, args ...any) {
	logger.Warn().Str("component", "eslgo").Msg(libraryMessage(format, args))
}

func libraryMessage(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
