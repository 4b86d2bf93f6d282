package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

// ContentService is the thin create/read surface for the entities the trash
// bin manages. Deletion is not here: every delete goes through
// TrashService.SoftDelete.
type ContentService struct {
	jobs    *repository.JobPostRepository
	threads *repository.CommunityRepository
}

func NewContentService(jobs *repository.JobPostRepository, threads *repository.CommunityRepository) *ContentService {
	return &ContentService{jobs: jobs, threads: threads}
}

func (s *ContentService) CreateJobPost(ctx context.Context, companyID string, req model.CreateJobPostRequest) (model.JobPostDetail, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return model.JobPostDetail{}, model.ErrInvalidInput
	}

	now := time.Now().UTC()
	post := model.JobPost{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Location:       strings.TrimSpace(req.Location),
		EmploymentType: strings.TrimSpace(req.EmploymentType),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	tags := dedupeTags(req.Tags)

	if err := s.jobs.Create(ctx, post, tags); err != nil {
		return model.JobPostDetail{}, err
	}
	return model.JobPostDetail{JobPost: post, Tags: tags}, nil
}

func (s *ContentService) GetJobPost(ctx context.Context, id string) (model.JobPostDetail, error) {
	post, tags, err := s.jobs.FindWithTags(ctx, id)
	if err != nil {
		return model.JobPostDetail{}, err
	}
	return model.JobPostDetail{JobPost: post, Tags: tags}, nil
}

func (s *ContentService) ListJobPosts(ctx context.Context, page int, limit int) ([]model.JobPost, model.Meta, error) {
	return s.jobs.List(ctx, page, limit)
}

func (s *ContentService) CreateThread(ctx context.Context, authorID string, req model.CreateThreadRequest) (model.CommunityThread, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.CommunityThread{}, model.ErrInvalidInput
	}

	thread := model.CommunityThread{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.threads.CreateThread(ctx, thread); err != nil {
		return model.CommunityThread{}, err
	}
	return thread, nil
}

func (s *ContentService) GetThread(ctx context.Context, id string) (model.ThreadDetail, error) {
	thread, posts, err := s.threads.FindThreadWithPosts(ctx, id)
	if err != nil {
		return model.ThreadDetail{}, err
	}
	return model.ThreadDetail{CommunityThread: thread, Posts: posts}, nil
}

func (s *ContentService) CreateThreadPost(ctx context.Context, threadID string, authorID string, req model.CreateThreadPostRequest) (model.CommunityPost, error) {
	if strings.TrimSpace(req.Body) == "" {
		return model.CommunityPost{}, model.ErrInvalidInput
	}

	post := model.CommunityPost{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		AuthorID:  authorID,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.threads.CreatePost(ctx, post); err != nil {
		return model.CommunityPost{}, err
	}
	return post, nil
}
