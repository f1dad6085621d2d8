package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"

	"go.uber.org/fx"
)

// FXModule wires the metrics server into Fx. The HTTP server starts serving
// the /metrics endpoint on startup and drains on shutdown.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("ERROR: metrics server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
