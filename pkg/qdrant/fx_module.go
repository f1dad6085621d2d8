package qdrant

import (
	"context"
	"log"
	"sync"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the Qdrant client.
//
// Dependencies required by this module:
// - A *qdrant.Config instance must be available in the dependency injection container.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In
	Config *Config
}

// RegisterQdrantLifecycle handles startup/shutdown of the Qdrant client.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var err error
			once.Do(func() {
				err = client.Close()
				log.Println("[Qdrant] client connection closed")
			})
			return err
		},
	})
}
