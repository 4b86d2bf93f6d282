package service

import (
	"context"
	"encoding/json"
	"fmt"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

// userSnapshot is the stored document for a soft-deleted user. Unknown fields
// in older snapshots (derived counts, eager-loaded collections) are dropped by
// the typed decode, which is the field-stripping step of a restore.
type userSnapshot struct {
	model.User
	Profile *model.Profile `json:"profile,omitempty"`
}

type userStrategy struct {
	users *repository.UserRepository
}

func NewUserStrategy(users *repository.UserRepository) RestoreStrategy {
	return &userStrategy{users: users}
}

func (s *userStrategy) Kind() string { return model.ItemKindUser }

func (s *userStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	user, profile, err := s.users.FindWithProfile(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(userSnapshot{User: user, Profile: profile})
}

func (s *userStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	return s.users.RemoveTx(ctx, q, itemID)
}

func (s *userStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	snap, err := decodeUserSnapshot(itemID, data)
	if err != nil {
		return err
	}

	if err := s.users.InsertTx(ctx, q, snap.User); err != nil {
		return err
	}
	if snap.Profile != nil {
		if err := s.users.InsertProfileTx(ctx, q, *snap.Profile); err != nil {
			return err
		}
	}
	return nil
}

func decodeUserSnapshot(itemID string, data json.RawMessage) (userSnapshot, error) {
	var snap userSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return userSnapshot{}, fmt.Errorf("decode user snapshot: %w", err)
	}
	if snap.User.ID == "" {
		snap.User.ID = itemID
	}
	if snap.Profile != nil {
		snap.Profile.UserID = snap.User.ID
	}
	return snap, nil
}
