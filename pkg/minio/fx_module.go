package minio

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the object store client into Fx.
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterMinioLifecycle),
)

func RegisterMinioLifecycle(lc fx.Lifecycle, client *Minio) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.logger.Info("shutting down object store client...", nil, nil)
			return nil
		},
	})
}
