package preview

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Tracer writes debug entries only while debugging is switched on.
type Tracer struct {
	logger  *zap.Logger
	enabled atomic.Bool
}

// NewTracer creates a disabled tracer writing to logger.
func NewTracer(logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracer{logger: logger}
}

func (t *Tracer) SetEnabled(enabled bool) { t.enabled.Store(enabled) }

func (t *Tracer) Enabled() bool { return t.enabled.Load() }

// Trace logs msg at debug level when enabled.
func (t *Tracer) Trace(msg string, fields ...zap.Field) {
	if t.enabled.Load() {
		t.logger.Debug(msg, fields...)
	}
}
