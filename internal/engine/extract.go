package engine

import (
	"strconv"
	"strings"
)

// RuleExtractor is the shipped deterministic extractor: keyword tables and
// clause splitting, no model calls. It exists so the planning/execution
// pipeline is reproducible and unit-testable end to end; a learned extractor
// can replace it behind the Extractor interface.
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

var verbWords = map[string]Verb{
	"add": VerbAdd, "buy": VerbAdd, "bought": VerbAdd, "purchase": VerbAdd,
	"purchased": VerbAdd, "restock": VerbAdd, "restocked": VerbAdd,
	"receive": VerbAdd, "received": VerbAdd, "stock": VerbAdd,

	"sell": VerbRemove, "sold": VerbRemove, "remove": VerbRemove,
	"removed": VerbRemove, "ship": VerbRemove, "shipped": VerbRemove,
	"take": VerbRemove, "took": VerbRemove, "subtract": VerbRemove,
	"deduct": VerbRemove,

	"clear": VerbClearAll, "empty": VerbClearAll,

	"show": VerbQuery, "list": VerbQuery, "check": VerbQuery,
	"display": VerbQuery, "view": VerbQuery,
}

// queryMarkers signal a stock question when no mutating verb is present.
var queryMarkers = map[string]bool{
	"how": true, "many": true, "much": true, "what": true, "whats": true,
	"what's": true,
	"current": true, "currently": true, "status": true, "left": true,
	"available": true, "have": true, "count": true, "counts": true,
	"level": true, "levels": true,
}

var stopWords = map[string]bool{
	"the": true, "of": true, "my": true, "our": true, "your": true,
	"from": true, "in": true, "on": true, "for": true, "to": true,
	"please": true, "can": true, "could": true, "would": true,
	"you": true, "i": true, "we": true, "me": true, "us": true,
	"it": true, "them": true, "there": true, "at": true, "with": true,
	"do": true, "does": true, "is": true, "are": true, "now": true,
	"inventory": true, "item": true, "items": true, "unit": true,
	"units": true, "tell": true, "about": true,
}

// Extract splits the query into conjoined clauses and derives one RawIntent
// per clause. Clause order follows the query left to right; a clause with no
// verb of its own inherits the previous clause's verb ("sell 3 tshirts and
// 2 hats"). Item phrases keep the user's original casing.
func (x *RuleExtractor) Extract(query string) []RawIntent {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var clauses [][]string
	var current []string
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if lower == "and" || lower == "," || lower == "then" || lower == "plus" {
			if len(current) > 0 {
				clauses = append(clauses, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		clauses = append(clauses, current)
	}

	sawQuestion := strings.Contains(query, "?")

	var intents []RawIntent
	inherited := Verb("")
	for _, clause := range clauses {
		intent, ok := parseClause(clause, inherited, sawQuestion)
		if !ok {
			continue
		}
		inherited = intent.Verb
		intents = append(intents, intent)
	}
	return intents
}

func parseClause(words []string, inherited Verb, sawQuestion bool) (RawIntent, bool) {
	var (
		verb      Verb
		explicit  bool
		quantity  string
		itemWords []string
		isQuery   bool
	)

	for i := 0; i < len(words); i++ {
		word := words[i]
		lower := strings.ToLower(word)

		if v, ok := verbWords[lower]; ok && verb == "" {
			// "stock" reads as a verb only at the head of a clause
			// ("stock 5 tshirts"); elsewhere it is the generic noun.
			if lower == "stock" && i > 0 {
				continue
			}
			verb = v
			explicit = true
			continue
		}

		if lower == "all" {
			if verb == VerbRemove && quantity == "" {
				verb = VerbClearAll
			}
			continue
		}

		if queryMarkers[lower] {
			isQuery = true
			continue
		}
		if stopWords[lower] {
			continue
		}

		if quantity == "" && isQuantityToken(lower) {
			// "a few" / "a couple": the relative word carries the meaning.
			if (lower == "a" || lower == "an") && i+1 < len(words) &&
				relativeWords[strings.ToLower(words[i+1])] {
				continue
			}
			quantity = lower
			continue
		}

		itemWords = append(itemWords, word)
	}

	if verb == "" && isQuery {
		verb = VerbQuery
	}
	if verb == "" {
		verb = inherited
	}
	if verb == "" {
		if sawQuestion || quantity == "" {
			verb = VerbQuery
		} else {
			verb = VerbAdd
		}
	}

	if quantity == "" && len(itemWords) == 0 && verb != VerbQuery && verb != VerbClearAll {
		return RawIntent{}, false
	}
	// A clause with nothing but an inherited or defaulted query verb carries
	// no information ("and then").
	if verb == VerbQuery && quantity == "" && len(itemWords) == 0 &&
		!explicit && !isQuery && !sawQuestion {
		return RawIntent{}, false
	}

	return RawIntent{
		Verb:           verb,
		ItemPhrase:     strings.Join(itemWords, " "),
		QuantityPhrase: quantity,
	}, true
}

func isQuantityToken(lower string) bool {
	if _, ok := wordNumbers[lower]; ok {
		return true
	}
	if relativeWords[lower] {
		return true
	}
	if strings.Contains(lower, "%") || lower == "percent" {
		return true
	}
	if _, err := strconv.ParseFloat(strings.TrimPrefix(lower, "+"), 64); err == nil {
		return true
	}
	return false
}

// tokenize splits on whitespace, separates commas, and strips terminal
// punctuation while leaving signs, decimal points, and hyphens intact.
func tokenize(query string) []string {
	query = strings.ReplaceAll(query, ",", " , ")
	fields := strings.Fields(query)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "?!.:;\"'()")
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}
