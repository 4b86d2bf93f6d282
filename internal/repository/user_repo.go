package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, role, created_at, updated_at
		 FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, username, password_hash, role, created_at, updated_at
		 FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindWithProfile loads a user and its optional profile sub-document in one
// round-trip. This is the snapshot read for soft deletion.
func (r *UserRepository) FindWithProfile(ctx context.Context, id string) (model.User, *model.Profile, error) {
	var u model.User
	var p model.Profile
	var hasProfile bool
	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.email, u.username, u.password_hash, u.role, u.created_at, u.updated_at,
		        p.user_id IS NOT NULL,
		        COALESCE(p.full_name, ''), COALESCE(p.headline, ''), COALESCE(p.bio, ''),
		        COALESCE(p.location, ''), COALESCE(p.updated_at, u.updated_at)
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
			&hasProfile, &p.FullName, &p.Headline, &p.Bio, &p.Location, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, nil, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, nil, fmt.Errorf("find user with profile: %w", err)
	}

	if !hasProfile {
		return u, nil, nil
	}
	p.UserID = u.ID
	return u, &p, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User, p *model.Profile) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := r.InsertTx(ctx, tx, u); err != nil {
			return err
		}
		if p != nil {
			return r.InsertProfileTx(ctx, tx, *p)
		}
		return nil
	})
}

func (r *UserRepository) InsertTx(ctx context.Context, q Querier, u model.User) error {
	_, err := q.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) InsertProfileTx(ctx context.Context, q Querier, p model.Profile) error {
	_, err := q.Exec(ctx,
		`INSERT INTO profiles (user_id, full_name, headline, bio, location, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.UserID, p.FullName, p.Headline, p.Bio, p.Location, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// RemoveTx deletes a user and its dependent rows inside the caller's
// transaction. The profile goes first to satisfy the foreign key.
func (r *UserRepository) RemoveTx(ctx context.Context, q Querier, id string) error {
	if _, err := q.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("remove user tokens: %w", err)
	}
	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
