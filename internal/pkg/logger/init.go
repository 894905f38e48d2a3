package logger

import (
	"context"
	"io"
	log "log/slog"
	"os"
)

var LogWriter io.Writer

// TraceIDKey is the context key carrying the per-request trace id.
const TraceIDKey = "trace_id"

func InitLogger() {
	LogWriter = os.Stdout

	handler := log.NewJSONHandler(LogWriter, &log.HandlerOptions{Level: log.LevelInfo})
	logger := log.New(&ContextHandler{handler})
	log.SetDefault(logger)
}

// ContextHandler stamps the trace id from the request context onto every
// record passing through.
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
