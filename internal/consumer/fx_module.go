package consumer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the worker into Fx. The message loop starts on application
// start and drains before shutdown completes.
var FXModule = fx.Module("consumer",
	fx.Provide(
		NewConfigFromEnv,
		NewWorker,
	),
	fx.Invoke(RegisterWorkerLifecycle),
)

func RegisterWorkerLifecycle(lc fx.Lifecycle, w *Worker) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				w.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
