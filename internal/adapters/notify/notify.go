// Package notify renders toast and progress notifications through the
// structured log, standing in for the host's notification surface.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Logger writes notifications as log events. It never blocks.
type Logger struct {
	log zerolog.Logger
}

var _ ports.Notifier = (*Logger)(nil)

// NewLogger constructs a log-backed notifier.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "notify").Logger()}
}

// Toast emits a one-shot user message at the given level.
func (l *Logger) Toast(message string, level ports.NotifyLevel) {
	switch level {
	case ports.NotifyError:
		l.log.Error().Str("toast", message).Msg("notification")
	case ports.NotifyWarn:
		l.log.Warn().Str("toast", message).Msg("notification")
	default:
		l.log.Info().Str("toast", message).Msg("notification")
	}
}

// Progress reports pipeline progress as a fraction in [0,1].
func (l *Logger) Progress(message string, fraction float64) {
	l.log.Info().Str("progress", message).Float64("fraction", fraction).Msg("notification")
}
