package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerboard/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, entry model.AuditEntry) error {
	var metadataJSON []byte
	if entry.Metadata != nil {
		data, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}
		metadataJSON = data
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (id, action, entity_type, entity_id, actor_user_id, actor_username, actor_role, actor_ip,
		  occurred_at, status, error_text, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID,
		entry.Actor.UserID, entry.Actor.Username, entry.Actor.Role, entry.Actor.IP,
		entry.OccurredAt, entry.Status, entry.Error, metadataJSON)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if action := strings.TrimSpace(query.Action); action != "" {
		where = append(where, fmt.Sprintf("upper(action) = upper($%d)", argIdx))
		args = append(args, action)
		argIdx++
	}
	if entityType := strings.TrimSpace(query.EntityType); entityType != "" {
		where = append(where, fmt.Sprintf("entity_type = $%d", argIdx))
		args = append(args, entityType)
		argIdx++
	}
	if actorID := strings.TrimSpace(query.ActorID); actorID != "" {
		where = append(where, fmt.Sprintf("actor_user_id = $%d", argIdx))
		args = append(args, actorID)
		argIdx++
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		where = append(where, fmt.Sprintf("lower(status) = lower($%d)", argIdx))
		args = append(args, status)
		argIdx++
	}
	if from := strings.TrimSpace(query.From); from != "" {
		where = append(where, fmt.Sprintf("occurred_at >= $%d::timestamptz", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to := strings.TrimSpace(query.To); to != "" {
		where = append(where, fmt.Sprintf("occurred_at <= $%d::timestamptz", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM audit_entries %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}
	meta := model.NewMeta(query.Page, query.Limit, total)

	offset := (query.Page - 1) * query.Limit
	dataQuery := fmt.Sprintf(
		`SELECT id, action, entity_type, entity_id, actor_user_id, actor_username, actor_role, actor_ip,
		        occurred_at, status, error_text, metadata
		 FROM audit_entries %s
		 ORDER BY occurred_at DESC
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, query.Limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var occurredAt time.Time
		var metadataJSON []byte

		if err := rows.Scan(
			&e.ID, &e.Action, &e.EntityType, &e.EntityID,
			&e.Actor.UserID, &e.Actor.Username, &e.Actor.Role, &e.Actor.IP,
			&occurredAt, &e.Status, &e.Error, &metadataJSON,
		); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}

		e.OccurredAt = occurredAt.UTC()
		if len(metadataJSON) > 0 {
			var metadata map[string]any
			if jsonErr := json.Unmarshal(metadataJSON, &metadata); jsonErr == nil {
				e.Metadata = metadata
			}
		}
		entries = append(entries, e)
	}

	return entries, meta, rows.Err()
}
