package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

type jobPostSnapshot struct {
	model.JobPost
	Tags []string `json:"tags,omitempty"`
}

type jobPostStrategy struct {
	posts *repository.JobPostRepository
}

func NewJobPostStrategy(posts *repository.JobPostRepository) RestoreStrategy {
	return &jobPostStrategy{posts: posts}
}

func (s *jobPostStrategy) Kind() string { return model.ItemKindJobPost }

func (s *jobPostStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	post, tags, err := s.posts.FindWithTags(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jobPostSnapshot{JobPost: post, Tags: tags})
}

func (s *jobPostStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	return s.posts.RemoveTx(ctx, q, itemID)
}

func (s *jobPostStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	snap, err := decodeJobPostSnapshot(itemID, data)
	if err != nil {
		return err
	}

	if err := s.posts.InsertTx(ctx, q, snap.JobPost); err != nil {
		return err
	}
	return s.posts.InsertTagsTx(ctx, q, snap.JobPost.ID, snap.Tags)
}

func decodeJobPostSnapshot(itemID string, data json.RawMessage) (jobPostSnapshot, error) {
	var snap jobPostSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return jobPostSnapshot{}, fmt.Errorf("decode job post snapshot: %w", err)
	}
	if snap.JobPost.ID == "" {
		snap.JobPost.ID = itemID
	}
	snap.Tags = dedupeTags(snap.Tags)
	return snap, nil
}

// dedupeTags drops empty and repeated tag names, keeping first-seen order, so
// a restore reattaches each tag exactly once.
func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
