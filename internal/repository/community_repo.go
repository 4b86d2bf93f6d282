package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type CommunityRepository struct {
	pool *pgxpool.Pool
}

func NewCommunityRepository(pool *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{pool: pool}
}

func (r *CommunityRepository) FindThreadWithPosts(ctx context.Context, id string) (model.CommunityThread, []model.CommunityPost, error) {
	var t model.CommunityThread
	err := r.pool.QueryRow(ctx,
		`SELECT id, author_id, title, body, created_at
		 FROM community_threads WHERE id = $1`, id).
		Scan(&t.ID, &t.AuthorID, &t.Title, &t.Body, &t.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.CommunityThread{}, nil, model.ErrThreadNotFound
	}
	if err != nil {
		return model.CommunityThread{}, nil, fmt.Errorf("find thread: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, thread_id, author_id, body, created_at
		 FROM community_posts WHERE thread_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return model.CommunityThread{}, nil, fmt.Errorf("list thread posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.CommunityPost, 0)
	for rows.Next() {
		var p model.CommunityPost
		if err := rows.Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Body, &p.CreatedAt); err != nil {
			return model.CommunityThread{}, nil, fmt.Errorf("scan thread post: %w", err)
		}
		posts = append(posts, p)
	}
	return t, posts, rows.Err()
}

func (r *CommunityRepository) CreateThread(ctx context.Context, t model.CommunityThread) error {
	return r.InsertThreadTx(ctx, r.pool, t)
}

func (r *CommunityRepository) CreatePost(ctx context.Context, p model.CommunityPost) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM community_threads WHERE id = $1)`, p.ThreadID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check thread exists: %w", err)
	}
	if !exists {
		return model.ErrThreadNotFound
	}
	return r.InsertPostTx(ctx, r.pool, p)
}

func (r *CommunityRepository) InsertThreadTx(ctx context.Context, q Querier, t model.CommunityThread) error {
	_, err := q.Exec(ctx,
		`INSERT INTO community_threads (id, author_id, title, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.AuthorID, t.Title, t.Body, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert thread: %w", err)
	}
	return nil
}

func (r *CommunityRepository) InsertPostTx(ctx context.Context, q Querier, p model.CommunityPost) error {
	_, err := q.Exec(ctx,
		`INSERT INTO community_posts (id, thread_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.ThreadID, p.AuthorID, p.Body, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert thread post: %w", err)
	}
	return nil
}

// RemoveThreadTx deletes a thread and its child posts inside the caller's
// transaction.
func (r *CommunityRepository) RemoveThreadTx(ctx context.Context, q Querier, id string) error {
	if _, err := q.Exec(ctx, `DELETE FROM community_posts WHERE thread_id = $1`, id); err != nil {
		return fmt.Errorf("remove thread posts: %w", err)
	}
	tag, err := q.Exec(ctx, `DELETE FROM community_threads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove thread: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrThreadNotFound
	}
	return nil
}
