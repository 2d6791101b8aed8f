package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ledgerOf(outcomes ...Outcome) Ledger {
	led := NewLedger(false)
	for _, o := range outcomes {
		led.Append(o)
	}
	return led
}

func TestComposeSuccesses(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name    string
		outcome Outcome
		counts  map[string]int
		want    string
	}{
		{
			"added plural",
			Outcome{Kind: OutcomeSuccess, Verb: VerbAdd, Item: "tshirts", Delta: 5, NewCount: 25},
			map[string]int{"tshirts": 25, "pants": 15},
			"Added 5 tshirts. Inventory: tshirts: 25, pants: 15.",
		},
		{
			"removed plural",
			Outcome{Kind: OutcomeSuccess, Verb: VerbRemove, Item: "tshirts", Delta: -3, NewCount: 17},
			map[string]int{"tshirts": 17, "pants": 15},
			"Removed 3 tshirts. Inventory: tshirts: 17, pants: 15.",
		},
		{
			"removed singular",
			Outcome{Kind: OutcomeSuccess, Verb: VerbRemove, Item: "tshirts", Delta: -1, NewCount: 19},
			map[string]int{"tshirts": 19, "pants": 15},
			"Removed 1 tshirt. Inventory: tshirts: 19, pants: 15.",
		},
		{
			"signed add renders as removal",
			Outcome{Kind: OutcomeSuccess, Verb: VerbAdd, Item: "tshirts", Delta: -5, NewCount: 15},
			map[string]int{"tshirts": 15, "pants": 15},
			"Removed 5 tshirts. Inventory: tshirts: 15, pants: 15.",
		},
		{
			"clear all no-op",
			Outcome{Kind: OutcomeSuccess, Verb: VerbClearAll, Item: "pants", Delta: 0, NewCount: 0},
			map[string]int{"tshirts": 20, "pants": 0},
			"Removed 0 pants. Inventory: tshirts: 20, pants: 0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := ledgerOf(tt.outcome)
			led.MergeCounts(tt.counts)
			assert.Equal(t, tt.want, Compose(led, cat))
		})
	}
}

func TestComposeUnsupportedItems(t *testing.T) {
	cat := testCatalog(t)

	t.Run("single", func(t *testing.T) {
		led := ledgerOf(Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"})
		assert.Equal(t,
			"Hats is not supported. Valid items are: tshirts and pants.",
			Compose(led, cat))
	})

	t.Run("aggregated in first position", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeUnsupportedItem, Item: "Hats"},
			Outcome{Kind: OutcomeUnsupportedItem, Item: "pantis"},
		)
		assert.Equal(t,
			"Hats and pantis are not supported. Valid items are: tshirts and pants.",
			Compose(led, cat))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"},
			Outcome{Kind: OutcomeUnsupportedItem, Item: "Hats"},
		)
		assert.Equal(t,
			"Hats is not supported. Valid items are: tshirts and pants.",
			Compose(led, cat))
	})

	t.Run("three items use a comma list", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"},
			Outcome{Kind: OutcomeUnsupportedItem, Item: "socks"},
			Outcome{Kind: OutcomeUnsupportedItem, Item: "shoes"},
		)
		assert.Equal(t,
			"Hats, socks and shoes are not supported. Valid items are: tshirts and pants.",
			Compose(led, cat))
	})

	t.Run("no valid items clause after a success", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeSuccess, Verb: VerbRemove, Item: "tshirts", Delta: -3, NewCount: 17},
			Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"},
		)
		led.Counts = map[string]int{"tshirts": 17, "pants": 15}
		assert.Equal(t,
			"Removed 3 tshirts. Hats is not supported. Inventory: tshirts: 17, pants: 15.",
			Compose(led, cat))
	})
}

func TestComposeRangeFailures(t *testing.T) {
	cat := testCatalog(t)

	t.Run("below zero", func(t *testing.T) {
		led := ledgerOf(Outcome{
			Kind: OutcomeBelowZero, Verb: VerbRemove, Item: "tshirts",
			Current: 20, Attempted: -30,
		})
		assert.Equal(t,
			"Cannot remove 30 tshirts. Only 20 are in stock.",
			Compose(led, cat))
	})

	t.Run("below zero singular stock", func(t *testing.T) {
		led := ledgerOf(Outcome{
			Kind: OutcomeBelowZero, Verb: VerbRemove, Item: "tshirts",
			Current: 1, Attempted: -2,
		})
		assert.Equal(t,
			"Cannot remove 2 tshirts. Only 1 is in stock.",
			Compose(led, cat))
	})

	t.Run("above cap", func(t *testing.T) {
		led := ledgerOf(Outcome{
			Kind: OutcomeAboveCap, Verb: VerbAdd, Item: "tshirts",
			Attempted: 20000, Cap: 10000,
		})
		assert.Equal(t,
			"Cannot change tshirts by 20000. The maximum change allowed is 10000.",
			Compose(led, cat))
	})
}

func TestComposeFixedTemplatesDedupe(t *testing.T) {
	cat := testCatalog(t)

	t.Run("fractional", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeFractionalQuantity, Item: "tshirts"},
			Outcome{Kind: OutcomeFractionalQuantity, Item: "pants"},
		)
		assert.Equal(t, msgFractional, Compose(led, cat))
	})

	t.Run("relative and missing share one sentence", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeRelativeQuantity, Item: "tshirts"},
			Outcome{Kind: OutcomeMissingQuantity, Item: "pants"},
		)
		assert.Equal(t, msgExact, Compose(led, cat))
	})

	t.Run("no item", func(t *testing.T) {
		led := ledgerOf(Outcome{Kind: OutcomeNoItem})
		assert.Equal(t, msgNoItem, Compose(led, cat))
	})

	t.Run("transport", func(t *testing.T) {
		led := ledgerOf(
			Outcome{Kind: OutcomeTransport, Item: "tshirts"},
			Outcome{Kind: OutcomeTransport, Item: "pants"},
		)
		assert.Equal(t, msgUnreach, Compose(led, cat))
	})
}

func TestComposeSnapshot(t *testing.T) {
	cat := testCatalog(t)

	t.Run("pure read", func(t *testing.T) {
		led := NewLedger(true)
		led.MergeCounts(map[string]int{"tshirts": 20, "pants": 15})
		assert.Equal(t, "Inventory: tshirts: 20, pants: 15.", Compose(led, cat))
	})

	t.Run("catalog declaration order wins over map order", func(t *testing.T) {
		led := NewLedger(true)
		led.MergeCounts(map[string]int{"pants": 15, "tshirts": 20})
		assert.Equal(t, "Inventory: tshirts: 20, pants: 15.", Compose(led, cat))
	})

	t.Run("read with nothing fetched stays silent", func(t *testing.T) {
		led := NewLedger(true)
		led.Append(Outcome{Kind: OutcomeTransport, Verb: VerbQuery})
		assert.Equal(t, msgUnreach, Compose(led, cat))
	})

	t.Run("failures alone never show a snapshot", func(t *testing.T) {
		led := ledgerOf(Outcome{
			Kind: OutcomeBelowZero, Verb: VerbRemove, Item: "tshirts",
			Current: 20, Attempted: -30,
		})
		led.MergeCounts(map[string]int{"tshirts": 20, "pants": 15})
		assert.Equal(t,
			"Cannot remove 30 tshirts. Only 20 are in stock.",
			Compose(led, cat))
	})
}

func TestComposeMixedOrdering(t *testing.T) {
	cat := testCatalog(t)

	led := ledgerOf(
		Outcome{Kind: OutcomeSuccess, Verb: VerbAdd, Item: "tshirts", Delta: 5, NewCount: 25},
		Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"},
		Outcome{Kind: OutcomeBelowZero, Verb: VerbRemove, Item: "pants", Current: 15, Attempted: -40},
		Outcome{Kind: OutcomeSuccess, Verb: VerbRemove, Item: "pants", Delta: -2, NewCount: 13},
	)
	led.Counts = map[string]int{"tshirts": 25, "pants": 13}

	assert.Equal(t,
		"Added 5 tshirts. Hats is not supported. Cannot remove 40 pants. "+
			"Only 15 are in stock. Removed 2 pants. Inventory: tshirts: 25, pants: 13.",
		Compose(led, cat))
}

func TestComposeIsDeterministic(t *testing.T) {
	cat := testCatalog(t)

	led := ledgerOf(
		Outcome{Kind: OutcomeSuccess, Verb: VerbAdd, Item: "tshirts", Delta: 5, NewCount: 25},
		Outcome{Kind: OutcomeUnsupportedItem, Item: "hats"},
		Outcome{Kind: OutcomeFractionalQuantity, Item: "pants"},
	)
	led.MergeCounts(map[string]int{"tshirts": 25, "pants": 15})

	first := Compose(led, cat)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compose(led, cat))
	}
}
