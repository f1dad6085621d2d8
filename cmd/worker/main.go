// The worker binary consumes analysis jobs from the broker, resolves drug
// mentions against the reference collections, and persists the enriched
// results.
package main

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/silvercare-ai/medmatch/internal/analysis"
	"github.com/silvercare-ai/medmatch/internal/consumer"
	"github.com/silvercare-ai/medmatch/internal/enrich"
	"github.com/silvercare-ai/medmatch/internal/retrieval"
	"github.com/silvercare-ai/medmatch/internal/schedule"
	"github.com/silvercare-ai/medmatch/internal/video"
	"github.com/silvercare-ai/medmatch/pkg/embedding"
	"github.com/silvercare-ai/medmatch/pkg/llm"
	"github.com/silvercare-ai/medmatch/pkg/logger"
	"github.com/silvercare-ai/medmatch/pkg/metrics"
	"github.com/silvercare-ai/medmatch/pkg/minio"
	"github.com/silvercare-ai/medmatch/pkg/postgres"
	"github.com/silvercare-ai/medmatch/pkg/qdrant"
	"github.com/silvercare-ai/medmatch/pkg/rabbit"
	"github.com/silvercare-ai/medmatch/pkg/tracer"
)

func main() {
	fx.New(
		fx.Provide(
			func() logger.Config { return logger.Config{Level: os.Getenv("ZAP_LOGGER_LEVEL")} },
			rabbit.NewConfigFromEnv,
			qdrant.NewConfigFromEnv,
			postgres.NewConfigFromEnv,
			minio.NewConfigFromEnv,
			metrics.NewConfigFromEnv,
			tracer.NewConfigFromEnv,
			video.NewSummarizerConfig,
		),

		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		rabbit.FXModule,
		qdrant.FXModule,
		postgres.FXModule,
		minio.FXModule,
		embedding.FXModule,
		llm.FXModule,

		fx.Provide(
			func(l *logger.Logger) rabbit.Logger { return l },
			func(l *logger.Logger) minio.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(l *logger.Logger) retrieval.Logger { return l },
			func(l *logger.Logger) enrich.Logger { return l },
			func(l *logger.Logger) analysis.Logger { return l },
			func(l *logger.Logger) schedule.Logger { return l },
			func(l *logger.Logger) video.Logger { return l },
			func(l *logger.Logger) consumer.Logger { return l },
		),

		fx.Provide(
			func(c *embedding.Client) retrieval.Embedder { return c },
			func(q *qdrant.QdrantClient) retrieval.Searcher { return q },
			retrieval.NewResolver,
			func(r *retrieval.Resolver) analysis.Resolver { return r },

			func(c *llm.Client) enrich.Completer { return c },
			enrich.NewEnricher,
			func(e *enrich.Enricher) analysis.Enricher { return e },

			schedule.NewStore,
			func(s *schedule.Store) analysis.Store { return s },
			func(s *schedule.Store) video.Store { return s },

			analysis.NewOrchestrator,
			func(o *analysis.Orchestrator) consumer.DrugSummaries { return o },

			func(m *minio.Minio) video.ObjectStore { return m },
			video.NewHTTPSummarizer,
			func(s *video.HTTPSummarizer) video.Summarizer { return s },
			video.NewHandler,
			func(h *video.Handler) consumer.VideoSummaries { return h },

			func(r *rabbit.Rabbit) consumer.Broker { return r },
		),

		// Collections must exist before the message loop starts; hooks run
		// in registration order.
		fx.Invoke(registerCollectionBootstrap),
		consumer.FXModule,
	).Run()
}

// registerCollectionBootstrap ensures the reference collections exist before
// the worker starts consuming.
func registerCollectionBootstrap(lc fx.Lifecycle, client *qdrant.QdrantClient, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, name := range retrieval.DefaultCollections().All() {
				if err := client.EnsureCollection(ctx, name); err != nil {
					return err
				}
				log.Debug("reference collection ready", nil, map[string]interface{}{
					"collection": name,
				})
			}
			return nil
		},
	})
}
