package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes errors through zerolog.
type LogHandler struct {
	// Verbose adds stack traces to the log entries.
	Verbose bool

	log zerolog.Logger
}

// NewLogHandler returns a LogHandler writing to log. A nil log selects a
// console writer on stderr.
func NewLogHandler(log *zerolog.Logger) *LogHandler {
	if log != nil {
		return &LogHandler{log: *log}
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	return &LogHandler{log: zerolog.New(console).With().Timestamp().Logger()}
}

// HandleError logs a BoxError.
func (h *LogHandler) HandleError(err *BoxError) {
	if err == nil {
		return
	}
	event := h.log.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.HasBox {
		event = event.Uint16("box", err.BoxID)
	}
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("boxkit error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	event := h.log.Error().Interface("panic", err.Value)
	if err.Op != "" {
		event = event.Str("op", err.Op)
	}
	if err.HasBox {
		event = event.Uint16("box", err.BoxID)
	}
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("boxkit panic")
}
