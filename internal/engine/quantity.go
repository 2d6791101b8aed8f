package engine

import (
	"strconv"
	"strings"
)

type QuantityKind int

const (
	// QuantityMissing: no quantity phrase was extracted.
	QuantityMissing QuantityKind = iota
	// QuantityExact: the phrase denotes a literal whole number.
	QuantityExact
	// QuantityFraction: a fractional literal like "2.5".
	QuantityFraction
	// QuantityRelative: "half", "some", "a few" — a portion of a base this
	// engine does not own. Never silently resolved to an integer.
	QuantityRelative
)

type Quantity struct {
	Kind QuantityKind
	N    int
	// Signed records an explicit sign in the phrase itself ("-5", "+3").
	// An explicit sign takes precedence over the verb's direction.
	Signed bool
}

var wordNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20,
	"a": 1, "an": 1, "dozen": 12,
}

var relativeWords = map[string]bool{
	"half": true, "quarter": true, "third": true,
	"some": true, "few": true, "couple": true, "several": true,
	"many": true, "most": true, "remaining": true, "rest": true,
	"more": true, "bit": true,
}

// ClassifyQuantity maps a quantity phrase onto one of the four kinds. It is
// pure and total: anything unrecognized is Relative, so downstream
// composition can still ask the user for an exact number.
func ClassifyQuantity(phrase string) Quantity {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return Quantity{Kind: QuantityMissing}
	}

	if n, ok := wordNumbers[p]; ok {
		return Quantity{Kind: QuantityExact, N: n}
	}

	if strings.Contains(p, "%") || strings.Contains(p, "percent") {
		return Quantity{Kind: QuantityRelative}
	}

	// Multi-word relative phrases: "a few", "a couple".
	fields := strings.Fields(p)
	last := fields[len(fields)-1]
	if relativeWords[last] {
		return Quantity{Kind: QuantityRelative}
	}

	signed := strings.HasPrefix(p, "-") || strings.HasPrefix(p, "+")
	if n, err := strconv.Atoi(p); err == nil {
		return Quantity{Kind: QuantityExact, N: n, Signed: signed}
	}
	if _, err := strconv.ParseFloat(p, 64); err == nil {
		return Quantity{Kind: QuantityFraction}
	}

	return Quantity{Kind: QuantityRelative}
}
