package service

import (
	"context"
	"encoding/json"

	"careerboard/internal/repository"
)

// RestoreStrategy is the per-entity-kind contract for the trash lifecycle.
// Snapshot captures the entity and its immediate relations as one document,
// Remove deletes the live rows, Restore reconstructs them from the snapshot
// keeping the original primary key. Remove and Restore run inside the
// caller's transaction.
type RestoreStrategy interface {
	Kind() string
	Snapshot(ctx context.Context, itemID string) (json.RawMessage, error)
	Remove(ctx context.Context, q repository.Querier, itemID string) error
	Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error
}

// StrategyRegistry maps item kinds to their restore strategies. Adding a new
// restorable kind means registering one more strategy here.
type StrategyRegistry struct {
	byKind map[string]RestoreStrategy
}

func NewStrategyRegistry(strategies ...RestoreStrategy) *StrategyRegistry {
	byKind := make(map[string]RestoreStrategy, len(strategies))
	for _, s := range strategies {
		byKind[s.Kind()] = s
	}
	return &StrategyRegistry{byKind: byKind}
}

func (r *StrategyRegistry) Lookup(kind string) (RestoreStrategy, bool) {
	s, ok := r.byKind[kind]
	return s, ok
}
