// Package catalog holds the process-wide snapshot of canonical item names.
//
// The snapshot is fetched once at startup from the store's schema endpoint
// and never mutated afterwards; a schema change at the store requires a
// restart. Every query's planner receives the same snapshot by reference,
// so no locking is needed.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stockpilot/stockpilot/internal/store"
)

type Snapshot struct {
	items []string
	index map[string]int
}

// New builds a snapshot from canonical names in declaration order.
func New(items []string) (*Snapshot, error) {
	if len(items) == 0 {
		return nil, errors.New("catalog: no items declared")
	}
	s := &Snapshot{
		items: make([]string, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		name := strings.ToLower(strings.TrimSpace(it))
		if name == "" {
			return nil, errors.New("catalog: empty item name")
		}
		if _, dup := s.index[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate item %q", name)
		}
		s.index[name] = len(s.items)
		s.items = append(s.items, name)
	}
	return s, nil
}

// Fetch reads the store schema and builds the startup snapshot. A failure
// here is fatal: the engine cannot validate items without a catalog.
func Fetch(ctx context.Context, client store.Client) (*Snapshot, error) {
	schema, err := client.Schema(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	return New(schema.Items)
}

// Items returns the canonical names in declaration order.
func (s *Snapshot) Items() []string {
	return append([]string(nil), s.items...)
}

func (s *Snapshot) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Snapshot) Len() int {
	return len(s.items)
}
