package engine

import (
	"context"

	"github.com/stockpilot/stockpilot/internal/catalog"
	"github.com/stockpilot/stockpilot/internal/platform/logger"
	"github.com/stockpilot/stockpilot/internal/store"
)

// Engine resolves natural-language inventory queries. It holds no mutable
// state: the catalog snapshot is read-only for the process lifetime and
// every query is planned, executed, and composed independently.
type Engine struct {
	log       *logger.Logger
	store     store.Client
	catalog   *catalog.Snapshot
	extractor Extractor
}

// New wires an engine. A nil extractor selects the shipped rule-based one.
func New(log *logger.Logger, client store.Client, cat *catalog.Snapshot, extractor Extractor) *Engine {
	if extractor == nil {
		extractor = NewRuleExtractor()
	}
	return &Engine{
		log:       log.With("component", "engine"),
		store:     client,
		catalog:   cat,
		extractor: extractor,
	}
}

func (e *Engine) Catalog() *catalog.Snapshot {
	return e.catalog
}

// ResolveQuery runs one query through the linear pipeline and returns the
// composed user-facing message. Store failures surface inside the message,
// never as an error; once execution starts it runs all planned steps.
func (e *Engine) ResolveQuery(ctx context.Context, query string) string {
	intents := e.extractor.Extract(query)
	plan := BuildPlan(intents, e.catalog)
	led := Execute(ctx, plan, e.store, e.log)

	if led.WantSnapshot {
		e.refreshUntouched(ctx, &led)
	}

	e.log.Debug("query resolved",
		"intents", len(intents),
		"steps", len(plan.Steps()),
		"outcomes", len(led.Outcomes),
	)

	return Compose(led, e.catalog)
}

// refreshUntouched merges a fresh count read for items this query did not
// mutate, so a requested snapshot reflects current stock. Mutated items keep
// the store's post-operation counts.
func (e *Engine) refreshUntouched(ctx context.Context, led *Ledger) {
	fresh, err := e.store.Counts(ctx)
	if err != nil {
		e.log.Warn("snapshot read failed", "error", err)
		if !led.HasKind(OutcomeTransport) {
			led.Append(Outcome{Kind: OutcomeTransport, Verb: VerbQuery})
		}
		return
	}
	for item, count := range fresh {
		if !led.Touched[item] {
			led.Counts[item] = count
		}
	}
}
