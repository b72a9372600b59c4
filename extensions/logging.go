package extensions

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/pumped-fn/autofixture"
)

// LoggingExtension logs every resolve, pin and customize operation at debug
// level, and failures at warn level.
type LoggingExtension struct {
	autofixture.BaseExtension
	logger *slog.Logger
}

// NewLoggingExtension creates a new logging extension
func NewLoggingExtension(logger *slog.Logger) *LoggingExtension {
	if logger == nil {
		logger = slog.New(NewSilentHandler())
	}
	return &LoggingExtension{
		BaseExtension: autofixture.NewBaseExtension("logging"),
		logger:        logger,
	}
}

func (e *LoggingExtension) Wrap(next func() (reflect.Value, error), op *autofixture.Operation) (reflect.Value, error) {
	start := time.Now()
	result, err := next()

	attrs := []any{
		"operation", string(op.Kind),
		"depth", op.Depth,
		"duration", time.Since(start),
	}
	if op.Type != nil {
		attrs = append(attrs, "type", op.Type.String())
	}
	if op.Name != "" {
		attrs = append(attrs, "name", op.Name)
	}

	if err != nil {
		e.logger.Warn("fixture operation failed", append(attrs, "error", err)...)
	} else {
		e.logger.Debug("fixture operation completed", attrs...)
	}

	return result, err
}
