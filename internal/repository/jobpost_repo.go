package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type JobPostRepository struct {
	pool *pgxpool.Pool
}

func NewJobPostRepository(pool *pgxpool.Pool) *JobPostRepository {
	return &JobPostRepository{pool: pool}
}

func (r *JobPostRepository) FindWithTags(ctx context.Context, id string) (model.JobPost, []string, error) {
	var p model.JobPost
	err := r.pool.QueryRow(ctx,
		`SELECT id, company_id, title, description, location, employment_type, created_at, updated_at
		 FROM job_posts WHERE id = $1`, id).
		Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Location,
			&p.EmploymentType, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.JobPost{}, nil, model.ErrJobPostNotFound
	}
	if err != nil {
		return model.JobPost{}, nil, fmt.Errorf("find job post: %w", err)
	}

	tags, err := r.findTags(ctx, id)
	if err != nil {
		return model.JobPost{}, nil, err
	}
	return p, tags, nil
}

func (r *JobPostRepository) findTags(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name FROM job_post_tags WHERE job_post_id = $1 ORDER BY name`, postID)
	if err != nil {
		return nil, fmt.Errorf("list job post tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan job post tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func (r *JobPostRepository) Create(ctx context.Context, p model.JobPost, tags []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := r.InsertTx(ctx, tx, p); err != nil {
			return err
		}
		return r.InsertTagsTx(ctx, tx, p.ID, tags)
	})
}

func (r *JobPostRepository) InsertTx(ctx context.Context, q Querier, p model.JobPost) error {
	_, err := q.Exec(ctx,
		`INSERT INTO job_posts
		 (id, company_id, title, description, location, employment_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CompanyID, p.Title, p.Description, p.Location,
		p.EmploymentType, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert job post: %w", err)
	}
	return nil
}

func (r *JobPostRepository) InsertTagsTx(ctx context.Context, q Querier, postID string, tags []string) error {
	for _, name := range tags {
		if _, err := q.Exec(ctx,
			`INSERT INTO job_post_tags (job_post_id, name) VALUES ($1, $2)
			 ON CONFLICT (job_post_id, name) DO NOTHING`, postID, name); err != nil {
			return fmt.Errorf("insert job post tag %q: %w", name, err)
		}
	}
	return nil
}

func (r *JobPostRepository) RemoveTx(ctx context.Context, q Querier, id string) error {
	if _, err := q.Exec(ctx, `DELETE FROM job_post_tags WHERE job_post_id = $1`, id); err != nil {
		return fmt.Errorf("remove job post tags: %w", err)
	}
	tag, err := q.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove job post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrJobPostNotFound
	}
	return nil
}

func (r *JobPostRepository) List(ctx context.Context, page int, limit int) ([]model.JobPost, model.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_posts`).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count job posts: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, company_id, title, description, location, employment_type, created_at, updated_at
		 FROM job_posts
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("list job posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.JobPost, 0)
	for rows.Next() {
		var p model.JobPost
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Location,
			&p.EmploymentType, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan job post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, model.NewMeta(page, limit, total), rows.Err()
}
