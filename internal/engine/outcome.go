package engine

// OutcomeKind classifies one ledger entry.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota

	// Validation failures, resolved before any store call.
	OutcomeUnsupportedItem
	OutcomeFractionalQuantity
	OutcomeRelativeQuantity
	OutcomeMissingQuantity
	OutcomeNoItem

	// Business rejections from the store.
	OutcomeBelowZero
	OutcomeAboveCap

	// Connectivity or 5xx; terminal for the affected step only.
	OutcomeTransport
)

// Outcome is one entry of the result ledger: either a success with the
// applied delta and the store's reported new count, or a failure with the
// fields its rendering needs.
type Outcome struct {
	Kind OutcomeKind
	Verb Verb

	// Item is the canonical name, except for OutcomeUnsupportedItem where it
	// preserves the user's original wording.
	Item string

	Delta    int
	NewCount int

	// Business rejection details, taken verbatim from the store's error.
	Current   int
	Attempted int
	Cap       int
}

// Ledger is the ordered record of one query's outcomes plus the last-known
// post-operation counts for every item the store reported.
type Ledger struct {
	Outcomes []Outcome

	// Counts is the most recent full count map any store response carried.
	Counts map[string]int

	// Touched marks items actually mutated (or cleared) this query.
	Touched map[string]bool

	// WantSnapshot is set when the query carried a pure read intent.
	WantSnapshot bool
}

func NewLedger(wantSnapshot bool) Ledger {
	return Ledger{
		Counts:       map[string]int{},
		Touched:      map[string]bool{},
		WantSnapshot: wantSnapshot,
	}
}

func (l *Ledger) Append(o Outcome) {
	l.Outcomes = append(l.Outcomes, o)
}

// MergeCounts overwrites the last-known counts with a full store response.
func (l *Ledger) MergeCounts(counts map[string]int) {
	for k, v := range counts {
		l.Counts[k] = v
	}
}

func (l *Ledger) HasSuccess() bool {
	for _, o := range l.Outcomes {
		if o.Kind == OutcomeSuccess {
			return true
		}
	}
	return false
}

func (l *Ledger) HasKind(kind OutcomeKind) bool {
	for _, o := range l.Outcomes {
		if o.Kind == kind {
			return true
		}
	}
	return false
}
