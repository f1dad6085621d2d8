package embedding

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the embedding client into Fx: config, the inference-API
// provider, and the client the retrieval layer embeds queries through.
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		NewInferenceProvider,
		NewClient,
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle closes the provider on shutdown when the
// implementation holds resources worth closing.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, p Provider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if c, ok := p.(interface{ Close() error }); ok {
				return c.Close()
			}
			return nil
		},
	})
}
