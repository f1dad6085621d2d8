package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the shared logger. Every other package receives it
// through its own narrow Logger interface.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes buffered log entries on shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
