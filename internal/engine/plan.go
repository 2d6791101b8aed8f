package engine

import (
	"github.com/stockpilot/stockpilot/internal/catalog"
)

// Step is one planned primitive operation: a signed delta against exactly
// one canonical item. ClearAll steps resolve their delta at execution time
// from a fresh read.
type Step struct {
	Item     string
	Verb     Verb
	Delta    int
	ClearAll bool
}

// planEntry keeps extraction order: each entry is either a step to execute
// or a validation failure already decided during planning.
type planEntry struct {
	step    *Step
	failure *Outcome
}

// Plan is the ordered output of planning one query's intents.
type Plan struct {
	entries      []planEntry
	WantSnapshot bool
}

// Steps returns the executable steps in plan order.
func (p Plan) Steps() []Step {
	var out []Step
	for _, e := range p.entries {
		if e.step != nil {
			out = append(out, *e.step)
		}
	}
	return out
}

// Failures returns the validation failures decided during planning.
func (p Plan) Failures() []Outcome {
	var out []Outcome
	for _, e := range p.entries {
		if e.failure != nil {
			out = append(out, *e.failure)
		}
	}
	return out
}

// BuildPlan resolves each intent, in extraction order, into either a step or
// a validation failure. A failing intent never blocks its siblings. A query
// that names no item at all collapses to one synthetic no-item failure
// instead of per-intent noise.
func BuildPlan(intents []RawIntent, cat *catalog.Snapshot) Plan {
	var plan Plan
	askedForItem := false

	for _, intent := range intents {
		if intent.ItemPhrase == "" {
			if intent.Verb == VerbQuery {
				plan.WantSnapshot = true
				continue
			}
			if !askedForItem {
				askedForItem = true
				plan.entries = append(plan.entries, planEntry{
					failure: &Outcome{Kind: OutcomeNoItem, Verb: intent.Verb},
				})
			}
			continue
		}

		item := NormalizeItem(intent.ItemPhrase, cat)
		if !item.Supported {
			plan.entries = append(plan.entries, planEntry{
				failure: &Outcome{Kind: OutcomeUnsupportedItem, Verb: intent.Verb, Item: item.Original},
			})
			continue
		}

		switch intent.Verb {
		case VerbQuery:
			plan.WantSnapshot = true
			continue
		case VerbClearAll:
			plan.entries = append(plan.entries, planEntry{
				step: &Step{Item: item.Canonical, Verb: VerbClearAll, ClearAll: true},
			})
			continue
		}

		q := ClassifyQuantity(intent.QuantityPhrase)
		switch q.Kind {
		case QuantityMissing:
			plan.entries = append(plan.entries, planEntry{
				failure: &Outcome{Kind: OutcomeMissingQuantity, Verb: intent.Verb, Item: item.Canonical},
			})
		case QuantityFraction:
			plan.entries = append(plan.entries, planEntry{
				failure: &Outcome{Kind: OutcomeFractionalQuantity, Verb: intent.Verb, Item: item.Canonical},
			})
		case QuantityRelative:
			plan.entries = append(plan.entries, planEntry{
				failure: &Outcome{Kind: OutcomeRelativeQuantity, Verb: intent.Verb, Item: item.Canonical},
			})
		case QuantityExact:
			delta := q.N
			if !q.Signed {
				delta = intent.Verb.Sign() * abs(q.N)
			}
			plan.entries = append(plan.entries, planEntry{
				step: &Step{Item: item.Canonical, Verb: intent.Verb, Delta: delta},
			})
		}
	}

	// Nothing extracted at all is the same clarification as "add 5".
	if len(intents) == 0 && !plan.WantSnapshot {
		plan.entries = append(plan.entries, planEntry{failure: &Outcome{Kind: OutcomeNoItem}})
	}

	return plan
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
