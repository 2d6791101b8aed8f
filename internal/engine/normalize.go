package engine

import (
	"strings"

	"github.com/stockpilot/stockpilot/internal/catalog"
)

// ResolvedItem is the outcome of normalizing one item phrase against the
// catalog snapshot. Original always preserves the user's wording.
type ResolvedItem struct {
	Canonical string
	Original  string
	Supported bool
}

// NormalizeItem folds an item phrase onto a canonical catalog entry:
// case folding, hyphen/space folding, and singular/plural folding
// ("T-shirt", "tshirt", "tshirts" all land on "tshirts" when the catalog
// declares "tshirts"). Anything that does not fold onto a catalog entry is
// unsupported; matching stops at literal normalization, never similarity.
func NormalizeItem(token string, cat *catalog.Snapshot) ResolvedItem {
	original := strings.TrimSpace(token)
	folded := foldItem(original)
	if folded == "" {
		return ResolvedItem{Original: original}
	}

	if cat.Contains(folded) {
		return ResolvedItem{Canonical: folded, Original: original, Supported: true}
	}
	for _, name := range cat.Items() {
		if depluralize(foldItem(name)) == depluralize(folded) {
			return ResolvedItem{Canonical: name, Original: original, Supported: true}
		}
	}
	return ResolvedItem{Original: original}
}

func foldItem(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func depluralize(s string) string {
	if strings.HasSuffix(s, "es") && len(s) > 3 {
		trimmed := strings.TrimSuffix(s, "es")
		switch {
		case strings.HasSuffix(trimmed, "s"), strings.HasSuffix(trimmed, "x"),
			strings.HasSuffix(trimmed, "z"), strings.HasSuffix(trimmed, "ch"),
			strings.HasSuffix(trimmed, "sh"):
			return trimmed
		}
	}
	if strings.HasSuffix(s, "s") && len(s) > 2 {
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// singularNoun renders a canonical item name for a count of one.
func singularNoun(name string) string {
	return depluralize(name)
}
