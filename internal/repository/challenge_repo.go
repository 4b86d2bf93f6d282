package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type ChallengeRepository struct {
	pool *pgxpool.Pool
}

func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (model.Challenge, error) {
	var c model.Challenge
	err := r.pool.QueryRow(ctx,
		`SELECT id, mentor_id, title, description, difficulty, created_at
		 FROM challenges WHERE id = $1`, id).
		Scan(&c.ID, &c.MentorID, &c.Title, &c.Description, &c.Difficulty, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Challenge{}, model.ErrChallengeNotFound
	}
	if err != nil {
		return model.Challenge{}, fmt.Errorf("find challenge: %w", err)
	}
	return c, nil
}

func (r *ChallengeRepository) InsertTx(ctx context.Context, q Querier, c model.Challenge) error {
	_, err := q.Exec(ctx,
		`INSERT INTO challenges (id, mentor_id, title, description, difficulty, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.MentorID, c.Title, c.Description, c.Difficulty, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) RemoveTx(ctx context.Context, q Querier, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrChallengeNotFound
	}
	return nil
}
