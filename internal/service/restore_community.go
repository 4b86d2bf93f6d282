package service

import (
	"context"
	"encoding/json"
	"fmt"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

type threadSnapshot struct {
	model.CommunityThread
	Posts []model.CommunityPost `json:"posts,omitempty"`
}

type threadStrategy struct {
	threads *repository.CommunityRepository
}

func NewThreadStrategy(threads *repository.CommunityRepository) RestoreStrategy {
	return &threadStrategy{threads: threads}
}

func (s *threadStrategy) Kind() string { return model.ItemKindCommunityThread }

func (s *threadStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	thread, posts, err := s.threads.FindThreadWithPosts(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(threadSnapshot{CommunityThread: thread, Posts: posts})
}

func (s *threadStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	return s.threads.RemoveThreadTx(ctx, q, itemID)
}

func (s *threadStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	snap, err := decodeThreadSnapshot(itemID, data)
	if err != nil {
		return err
	}

	if err := s.threads.InsertThreadTx(ctx, q, snap.CommunityThread); err != nil {
		return err
	}
	for _, post := range snap.Posts {
		if err := s.threads.InsertPostTx(ctx, q, post); err != nil {
			return err
		}
	}
	return nil
}

func decodeThreadSnapshot(itemID string, data json.RawMessage) (threadSnapshot, error) {
	var snap threadSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return threadSnapshot{}, fmt.Errorf("decode thread snapshot: %w", err)
	}
	if snap.CommunityThread.ID == "" {
		snap.CommunityThread.ID = itemID
	}
	// Child posts always point at the restored thread, whatever the snapshot says.
	for i := range snap.Posts {
		snap.Posts[i].ThreadID = snap.CommunityThread.ID
	}
	return snap, nil
}
