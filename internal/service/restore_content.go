package service

import (
	"context"
	"encoding/json"
	"fmt"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

// Blog posts and challenges have no nested relations; their strategies are
// plain single-row round-trips.

type blogPostStrategy struct {
	blog *repository.BlogRepository
}

func NewBlogPostStrategy(blog *repository.BlogRepository) RestoreStrategy {
	return &blogPostStrategy{blog: blog}
}

func (s *blogPostStrategy) Kind() string { return model.ItemKindBlogPost }

func (s *blogPostStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	post, err := s.blog.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(post)
}

func (s *blogPostStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	return s.blog.RemoveTx(ctx, q, itemID)
}

func (s *blogPostStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	var post model.BlogPost
	if err := json.Unmarshal(data, &post); err != nil {
		return fmt.Errorf("decode blog post snapshot: %w", err)
	}
	if post.ID == "" {
		post.ID = itemID
	}
	return s.blog.InsertTx(ctx, q, post)
}

type challengeStrategy struct {
	challenges *repository.ChallengeRepository
}

func NewChallengeStrategy(challenges *repository.ChallengeRepository) RestoreStrategy {
	return &challengeStrategy{challenges: challenges}
}

func (s *challengeStrategy) Kind() string { return model.ItemKindChallenge }

func (s *challengeStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	challenge, err := s.challenges.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(challenge)
}

func (s *challengeStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	return s.challenges.RemoveTx(ctx, q, itemID)
}

func (s *challengeStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	var challenge model.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return fmt.Errorf("decode challenge snapshot: %w", err)
	}
	if challenge.ID == "" {
		challenge.ID = itemID
	}
	return s.challenges.InsertTx(ctx, q, challenge)
}
