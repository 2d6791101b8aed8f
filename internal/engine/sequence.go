package engine

import (
	"context"
	"errors"

	"github.com/stockpilot/stockpilot/internal/pkg/httpx"
	"github.com/stockpilot/stockpilot/internal/platform/logger"
	"github.com/stockpilot/stockpilot/internal/store"
)

// Execute runs the plan strictly sequentially, in plan order, continuing
// past per-step failures so one invalid step never blocks its siblings.
// Validation failures decided during planning are copied into the ledger at
// the position they occurred.
func Execute(ctx context.Context, plan Plan, client store.Client, log *logger.Logger) Ledger {
	led := NewLedger(plan.WantSnapshot)

	for _, entry := range plan.entries {
		if entry.failure != nil {
			led.Append(*entry.failure)
			continue
		}

		step := *entry.step
		if step.ClearAll {
			counts, err := client.Counts(ctx)
			if err != nil {
				log.Warn("clear-all read failed", "item", step.Item, "error", err)
				led.Append(Outcome{Kind: OutcomeTransport, Verb: step.Verb, Item: step.Item})
				continue
			}
			led.MergeCounts(counts)

			current := counts[step.Item]
			if current == 0 {
				// Already empty: a no-op success, no write issued.
				led.Touched[step.Item] = true
				led.Append(Outcome{Kind: OutcomeSuccess, Verb: step.Verb, Item: step.Item})
				continue
			}
			step.Delta = -current
		}

		counts, err := client.Apply(ctx, step.Item, step.Delta)
		if err != nil {
			led.Append(failureFor(step, err, log))
			continue
		}

		led.MergeCounts(counts)
		led.Touched[step.Item] = true
		led.Append(Outcome{
			Kind:     OutcomeSuccess,
			Verb:     step.Verb,
			Item:     step.Item,
			Delta:    step.Delta,
			NewCount: counts[step.Item],
		})
	}

	return led
}

// failureFor maps a store client error onto a ledger outcome. The numbers in
// range failures come from the store's structured error, never recomputed.
func failureFor(step Step, err error, log *logger.Logger) Outcome {
	var rangeErr *store.RangeError
	if errors.As(err, &rangeErr) {
		o := Outcome{
			Verb:      step.Verb,
			Item:      step.Item,
			Attempted: rangeErr.Attempted,
		}
		if rangeErr.Kind == store.RangeAboveCap {
			o.Kind = OutcomeAboveCap
			o.Cap = rangeErr.Cap
		} else {
			o.Kind = OutcomeBelowZero
			o.Current = rangeErr.Current
		}
		return o
	}

	var unknownErr *store.UnknownItemError
	if errors.As(err, &unknownErr) {
		// The catalog snapshot let an item through the store no longer
		// tracks; the process needs a restart to refresh its schema.
		log.Error("catalog out of date with store", "item", step.Item, "error", err)
		return Outcome{Kind: OutcomeUnsupportedItem, Verb: step.Verb, Item: step.Item}
	}

	if !httpx.IsTransportError(err) {
		log.Error("unclassified store error", "item", step.Item, "error", err)
	} else {
		log.Warn("store unreachable", "item", step.Item, "error", err)
	}
	return Outcome{Kind: OutcomeTransport, Verb: step.Verb, Item: step.Item}
}
