package analysis

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/silvercare-ai/medmatch/internal/enrich"
	"github.com/silvercare-ai/medmatch/internal/retrieval"
	"github.com/silvercare-ai/medmatch/internal/schedule"
)

// Job is one drug-summary unit of work, owned by a single message.
type Job struct {
	ScheduleID uint
	Mentions   []retrieval.Mention
}

// Resolver is the retrieval dependency.
type Resolver interface {
	Resolve(ctx context.Context, mention retrieval.Mention, collection string) *retrieval.MatchCandidate
	ResolveIngredients(ctx context.Context, mention retrieval.Mention, collection string) []retrieval.MatchCandidate
}

// Enricher is the summarization dependency.
type Enricher interface {
	Enrich(ctx context.Context, contextText string) (enrich.Result, error)
}

// Store is the persistence dependency.
type Store interface {
	Description(ctx context.Context, scheduleID uint) (schedule.Description, error)
	UpdateDescription(ctx context.Context, scheduleID uint, doc schedule.Description) error
}

// Logger defines the interface for logging operations in the analysis package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Orchestrator runs drug-summary jobs end to end.
type Orchestrator struct {
	resolver    Resolver
	enricher    Enricher
	store       Store
	logger      Logger
	collections retrieval.Collections
}

func NewOrchestrator(resolver Resolver, enricher Enricher, store Store, logger Logger) *Orchestrator {
	return &Orchestrator{
		resolver:    resolver,
		enricher:    enricher,
		store:       store,
		logger:      logger,
		collections: retrieval.DefaultCollections(),
	}
}

// RunBatch resolves every mention, concatenates the context blocks, and makes
// one enrichment call over the whole batch. A reply that fails to parse is
// fatal for the job; nothing is merged.
func (o *Orchestrator) RunBatch(ctx context.Context, job Job) error {
	if len(job.Mentions) == 0 {
		o.logger.Info("job carries no mentions, nothing to do", nil, map[string]interface{}{
			"schedule_id": job.ScheduleID,
		})
		return nil
	}

	contexts := make([]mentionContext, len(job.Mentions))
	g, gctx := errgroup.WithContext(ctx)
	for i, mention := range job.Mentions {
		i, mention := i, mention
		g.Go(func() error {
			contexts[i] = o.resolveMention(gctx, mention)
			return nil
		})
	}
	// Retrieval reports its own failures as not-found, never as errors.
	_ = g.Wait()

	result, err := o.enricher.Enrich(ctx, joinBlocks(contexts))
	if err != nil {
		return fmt.Errorf("batch enrichment for schedule %d: %w", job.ScheduleID, err)
	}

	return o.merge(ctx, job.ScheduleID, result)
}

// RunParallel resolves and enriches each mention concurrently, one completion
// call per mention. A mention whose enrichment fails is skipped with a
// warning; the remaining mentions still merge.
func (o *Orchestrator) RunParallel(ctx context.Context, job Job) error {
	if len(job.Mentions) == 0 {
		o.logger.Info("job carries no mentions, nothing to do", nil, map[string]interface{}{
			"schedule_id": job.ScheduleID,
		})
		return nil
	}

	combined := enrich.Result{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, mention := range job.Mentions {
		mention := mention
		g.Go(func() error {
			mc := o.resolveMention(gctx, mention)

			result, err := o.enricher.Enrich(gctx, mc.block())
			if err != nil {
				o.logger.Warn("mention enrichment failed, skipping", err, map[string]interface{}{
					"schedule_id": job.ScheduleID,
					"drug":        mention.Name,
				})
				return nil
			}

			mu.Lock()
			for name, entry := range result {
				combined[name] = entry
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(combined) == 0 {
		o.logger.Warn("no mention produced a usable enrichment", nil, map[string]interface{}{
			"schedule_id": job.ScheduleID,
		})
		return nil
	}

	return o.merge(ctx, job.ScheduleID, combined)
}

// resolveMention fans one mention out across the three reference collections
// in parallel. Retrieval treats its own failures as not-found, so this never
// errors.
func (o *Orchestrator) resolveMention(ctx context.Context, mention retrieval.Mention) mentionContext {
	mc := mentionContext{mention: mention}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mc.product = o.resolver.Resolve(gctx, mention, o.collections.ProductDetail)
		return nil
	})
	g.Go(func() error {
		mc.riskFlag = o.resolver.Resolve(gctx, mention, o.collections.RiskFlag)
		return nil
	})
	g.Go(func() error {
		mc.ingredients = o.resolver.ResolveIngredients(gctx, mention, o.collections.RiskIngredient)
		return nil
	})
	_ = g.Wait()

	return mc
}

func (o *Orchestrator) merge(ctx context.Context, scheduleID uint, result enrich.Result) error {
	doc, err := o.store.Description(ctx, scheduleID)
	if err != nil {
		return err
	}

	doc.DrugCandidates = mergeCandidates(doc.DrugCandidates, result, o.logger)

	if err := o.store.UpdateDescription(ctx, scheduleID, doc); err != nil {
		return err
	}

	o.logger.Info("schedule description updated", nil, map[string]interface{}{
		"schedule_id": scheduleID,
		"drugs":       len(result),
	})
	return nil
}
