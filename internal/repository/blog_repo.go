package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.pool.QueryRow(ctx,
		`SELECT id, author_id, title, content, published, created_at, updated_at
		 FROM blog_posts WHERE id = $1`, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.BlogPost{}, model.ErrBlogPostNotFound
	}
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("find blog post: %w", err)
	}
	return p, nil
}

func (r *BlogRepository) InsertTx(ctx context.Context, q Querier, p model.BlogPost) error {
	_, err := q.Exec(ctx,
		`INSERT INTO blog_posts (id, author_id, title, content, published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.AuthorID, p.Title, p.Content, p.Published, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

func (r *BlogRepository) RemoveTx(ctx context.Context, q Querier, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogPostNotFound
	}
	return nil
}
