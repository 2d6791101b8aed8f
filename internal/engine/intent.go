// Package engine turns one natural-language inventory command into an
// ordered sequence of validated single-item operations against the
// inventory store, then renders the per-operation outcomes into one
// user-facing message.
//
// Each query runs EXTRACT -> PLAN -> EXECUTE -> COMPOSE exactly once, on a
// single goroutine, with no retries across stages. The only shared state is
// the read-only catalog snapshot.
package engine

// Verb is the action a clause of the query asks for.
type Verb string

const (
	VerbAdd      Verb = "add"
	VerbRemove   Verb = "remove"
	VerbQuery    Verb = "query"
	VerbClearAll Verb = "clear_all"
)

// Sign is the delta direction the verb implies when the quantity phrase
// carries no explicit sign.
func (v Verb) Sign() int {
	switch v {
	case VerbAdd:
		return 1
	case VerbRemove, VerbClearAll:
		return -1
	default:
		return 0
	}
}

// RawIntent is one extracted (verb, item, quantity) tuple. A query may
// produce several, one per conjoined clause, in left-to-right order.
type RawIntent struct {
	Verb           Verb
	ItemPhrase     string
	QuantityPhrase string
}

// Extractor produces RawIntents from raw query text. The shipped
// implementation is rule-based; a learned extractor can be plugged in as
// long as it emits intents in the order the query names them.
type Extractor interface {
	Extract(query string) []RawIntent
}
