package rabbit

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

func RegisterRabbitLifecycle(lc fx.Lifecycle, client *Rabbit, logger Logger, cfg Config) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)

			go func(logger Logger, cfg Config) {
				defer wg.Done()
				client.RetryConnection(logger, cfg)
			}(logger, cfg)

			return nil
		},
		OnStop: func(ctx context.Context) error {

			client.GracefulShutdown()

			wg.Wait()
			return nil
		},
	})
}

// GracefulShutdown closes the channel and connection exactly once.
func (rb *Rabbit) GracefulShutdown() {
	rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})

	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.logger.Info("closing rabbit channel...", nil, nil)

	if rb.Channel != nil {
		if err := rb.Channel.Close(); err != nil {
			rb.logger.Error("error in closing rabbit channel", err, nil)
			return
		}
	}
	if rb.conn != nil && !rb.conn.IsClosed() {
		if err := rb.conn.Close(); err != nil {
			rb.logger.Error("error in closing rabbit connection", err, nil)
			return
		}
	}
}
