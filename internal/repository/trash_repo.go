package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type TrashRepository struct {
	pool *pgxpool.Pool
}

func NewTrashRepository(pool *pgxpool.Pool) *TrashRepository {
	return &TrashRepository{pool: pool}
}

func (r *TrashRepository) Create(ctx context.Context, rec model.TrashRecord) error {
	return r.CreateTx(ctx, r.pool, rec)
}

func (r *TrashRepository) CreateTx(ctx context.Context, q Querier, rec model.TrashRecord) error {
	_, err := q.Exec(ctx,
		`INSERT INTO trash_records
		 (id, item_type, item_id, item_data, deleted_by, deleted_at, expires_at,
		  restored, permanently_deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE)`,
		rec.ID, rec.ItemType, rec.ItemID, rec.ItemData,
		rec.DeletedBy, rec.DeletedAt, rec.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create trash record: %w", err)
	}
	return nil
}

// FindLiveByID returns a record that is neither restored nor purged. Terminal
// records are invisible through this lookup, which is what makes purge final.
func (r *TrashRepository) FindLiveByID(ctx context.Context, id string) (model.TrashRecord, error) {
	var rec model.TrashRecord
	err := r.pool.QueryRow(ctx,
		`SELECT id, item_type, item_id, item_data, deleted_by, deleted_at, expires_at,
		        restored, restored_at, permanently_deleted
		 FROM trash_records
		 WHERE id = $1 AND restored = FALSE AND permanently_deleted = FALSE`, id).
		Scan(&rec.ID, &rec.ItemType, &rec.ItemID, &rec.ItemData, &rec.DeletedBy,
			&rec.DeletedAt, &rec.ExpiresAt, &rec.Restored, &rec.RestoredAt,
			&rec.PermanentlyDeleted)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.TrashRecord{}, model.ErrTrashItemNotFound
	}
	if err != nil {
		return model.TrashRecord{}, fmt.Errorf("find trash by id: %w", err)
	}
	return rec, nil
}

// List returns live records only, newest deletion first. It never mutates
// anything; the expiry sweep is a separate operation.
func (r *TrashRepository) List(ctx context.Context, query model.TrashQuery) ([]model.TrashRecord, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	where := `WHERE restored = FALSE AND permanently_deleted = FALSE`
	args := make([]any, 0, 3)
	if itemType := strings.TrimSpace(query.ItemType); itemType != "" {
		where += ` AND item_type = $1`
		args = append(args, itemType)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM trash_records ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count trash records: %w", err)
	}
	meta := model.NewMeta(query.Page, query.Limit, total)

	offset := (query.Page - 1) * query.Limit
	dataQuery := fmt.Sprintf(
		`SELECT id, item_type, item_id, item_data, deleted_by, deleted_at, expires_at,
		        restored, restored_at, permanently_deleted
		 FROM trash_records %s
		 ORDER BY deleted_at DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, query.Limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("list trash: %w", err)
	}
	defer rows.Close()

	records := make([]model.TrashRecord, 0)
	for rows.Next() {
		var rec model.TrashRecord
		if err := rows.Scan(&rec.ID, &rec.ItemType, &rec.ItemID, &rec.ItemData,
			&rec.DeletedBy, &rec.DeletedAt, &rec.ExpiresAt, &rec.Restored,
			&rec.RestoredAt, &rec.PermanentlyDeleted); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan trash record: %w", err)
		}
		records = append(records, rec)
	}
	return records, meta, rows.Err()
}

func (r *TrashRepository) MarkRestoredTx(ctx context.Context, q Querier, id string, at time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE trash_records
		 SET restored = TRUE, restored_at = $2
		 WHERE id = $1 AND restored = FALSE AND permanently_deleted = FALSE`,
		id, at)
	if err != nil {
		return fmt.Errorf("mark restored: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTrashItemNotFound
	}
	return nil
}

func (r *TrashRepository) MarkPurged(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trash_records
		 SET permanently_deleted = TRUE
		 WHERE id = $1 AND restored = FALSE AND permanently_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("mark purged: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTrashItemNotFound
	}
	return nil
}

// PurgeExpired flags every live record past its expiry. Re-running is a no-op
// for records already flagged.
func (r *TrashRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trash_records
		 SET permanently_deleted = TRUE
		 WHERE expires_at < $1 AND restored = FALSE AND permanently_deleted = FALSE`, now)
	if err != nil {
		return 0, fmt.Errorf("purge expired trash: %w", err)
	}
	return tag.RowsAffected(), nil
}
