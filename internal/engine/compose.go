package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stockpilot/stockpilot/internal/catalog"
)

// Fixed clarification templates. Quantity and transport failures carry no
// per-item numbers, so repeats collapse to one sentence.
const (
	msgFractional = "Only whole numbers are supported. Please provide a whole number of items to add or remove."
	msgExact      = "Please provide an exact number for updates."
	msgNoItem     = "Please specify which item(s) you would like to update."
	msgUnreach    = "The inventory service is currently unavailable. Please try again later."
)

var upperEnglish = cases.Upper(language.English)

// Compose renders the result ledger into one message. It is pure and
// deterministic: the same ledger always yields a byte-identical string.
// Outcome groups keep the order they first occurred, so a success for the
// first-named item always precedes a failure for the second.
func Compose(led Ledger, cat *catalog.Snapshot) string {
	var (
		sentences      []string
		unsupported    []string
		unsupportedPos = -1
		saidExact      bool
		saidFraction   bool
		saidNoItem     bool
		saidUnreach    bool
	)

	for _, o := range led.Outcomes {
		switch o.Kind {
		case OutcomeSuccess:
			sentences = append(sentences, successSentence(o))
		case OutcomeUnsupportedItem:
			if unsupportedPos < 0 {
				unsupportedPos = len(sentences)
				sentences = append(sentences, "")
			}
			unsupported = appendToken(unsupported, o.Item)
		case OutcomeBelowZero:
			sentences = append(sentences, belowZeroSentence(o))
		case OutcomeAboveCap:
			sentences = append(sentences, aboveCapSentence(o))
		case OutcomeFractionalQuantity:
			if !saidFraction {
				saidFraction = true
				sentences = append(sentences, msgFractional)
			}
		case OutcomeRelativeQuantity, OutcomeMissingQuantity:
			if !saidExact {
				saidExact = true
				sentences = append(sentences, msgExact)
			}
		case OutcomeNoItem:
			if !saidNoItem {
				saidNoItem = true
				sentences = append(sentences, msgNoItem)
			}
		case OutcomeTransport:
			if !saidUnreach {
				saidUnreach = true
				sentences = append(sentences, msgUnreach)
			}
		}
	}

	if unsupportedPos >= 0 {
		sentences[unsupportedPos] = unsupportedSentence(unsupported)
	}

	if led.HasSuccess() || (led.WantSnapshot && len(led.Counts) > 0) {
		sentences = append(sentences, snapshotClause(led.Counts, cat))
	}
	if !led.HasSuccess() && unsupportedPos >= 0 {
		sentences = append(sentences, validItemsClause(cat))
	}

	return strings.Join(sentences, " ")
}

func successSentence(o Outcome) string {
	n := abs(o.Delta)
	verb := "Added"
	if o.Delta < 0 || (o.Delta == 0 && o.Verb != VerbAdd) {
		verb = "Removed"
	}
	return fmt.Sprintf("%s %d %s.", verb, n, noun(o.Item, n))
}

func belowZeroSentence(o Outcome) string {
	n := abs(o.Attempted)
	linking := "are"
	if o.Current == 1 {
		linking = "is"
	}
	return fmt.Sprintf("Cannot remove %d %s. Only %d %s in stock.",
		n, noun(o.Item, n), o.Current, linking)
}

func aboveCapSentence(o Outcome) string {
	return fmt.Sprintf("Cannot change %s by %d. The maximum change allowed is %d.",
		o.Item, abs(o.Attempted), o.Cap)
}

func unsupportedSentence(tokens []string) string {
	linking := "is"
	if len(tokens) > 1 {
		linking = "are"
	}
	return fmt.Sprintf("%s %s not supported.", capitalizeFirst(joinList(tokens)), linking)
}

func snapshotClause(counts map[string]int, cat *catalog.Snapshot) string {
	parts := make([]string, 0, cat.Len())
	for _, item := range cat.Items() {
		if c, ok := counts[item]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", item, c))
		}
	}
	return "Inventory: " + strings.Join(parts, ", ") + "."
}

func validItemsClause(cat *catalog.Snapshot) string {
	return "Valid items are: " + joinList(cat.Items()) + "."
}

func noun(item string, n int) string {
	if n == 1 {
		return singularNoun(item)
	}
	return item
}

// joinList renders "a", "a and b", "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func appendToken(tokens []string, raw string) []string {
	tok := strings.ToLower(strings.TrimSpace(raw))
	if tok == "" {
		return tokens
	}
	for _, existing := range tokens {
		if existing == tok {
			return tokens
		}
	}
	return append(tokens, tok)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return upperEnglish.String(string(runes[0])) + string(runes[1:])
}
