package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

// DefaultRetention is how long a trash record stays restorable.
const DefaultRetention = 30 * 24 * time.Hour

type TrashStore interface {
	Create(ctx context.Context, rec model.TrashRecord) error
	CreateTx(ctx context.Context, q repository.Querier, rec model.TrashRecord) error
	FindLiveByID(ctx context.Context, id string) (model.TrashRecord, error)
	List(ctx context.Context, query model.TrashQuery) ([]model.TrashRecord, model.Meta, error)
	MarkRestoredTx(ctx context.Context, q repository.Querier, id string, at time.Time) error
	MarkPurged(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(q repository.Querier) error) error
}

// AuditSink accepts trash transition entries fire-and-forget; it must never
// block or return an error to the caller.
type AuditSink interface {
	Record(entry model.AuditEntry)
}

// TrashService owns the soft-delete lifecycle: capture, listing, restore,
// purge and the expiration sweep.
type TrashService struct {
	trashRepo  TrashStore
	tx         TxRunner
	strategies *StrategyRegistry
	audit      AuditSink
	retention  time.Duration
	now        func() time.Time
}

func NewTrashService(trashRepo TrashStore, tx TxRunner, strategies *StrategyRegistry, audit AuditSink, retention time.Duration) *TrashService {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &TrashService{
		trashRepo:  trashRepo,
		tx:         tx,
		strategies: strategies,
		audit:      audit,
		retention:  retention,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// MoveToTrash records an already-captured snapshot. The caller owns the
// ordering with the live entity's removal; SoftDelete is the transactional
// path and should be preferred.
func (s *TrashService) MoveToTrash(ctx context.Context, itemType string, itemID string, itemData json.RawMessage, deletedBy string) (model.TrashRecord, error) {
	if strings.TrimSpace(itemType) == "" || strings.TrimSpace(itemID) == "" {
		return model.TrashRecord{}, fmt.Errorf("%w: item type and item id are required", model.ErrInvalidInput)
	}

	rec := s.newRecord(itemType, itemID, itemData, deletedBy)
	if err := s.trashRepo.Create(ctx, rec); err != nil {
		return model.TrashRecord{}, err
	}
	return rec, nil
}

// SoftDelete snapshots the entity with its relations, then inserts the trash
// record and deletes the live rows in a single transaction, so a crash can
// neither lose the entity nor leave a deletion without a trace.
func (s *TrashService) SoftDelete(ctx context.Context, itemType string, itemID string, actor model.AuditActor) (model.TrashRecord, error) {
	strategy, ok := s.strategies.Lookup(itemType)
	if !ok {
		return model.TrashRecord{}, fmt.Errorf("%w: %s", model.ErrUnsupportedItemType, itemType)
	}

	snapshot, err := strategy.Snapshot(ctx, itemID)
	if err != nil {
		return model.TrashRecord{}, err
	}

	rec := s.newRecord(itemType, itemID, snapshot, actor.UserID)
	err = s.tx.InTx(ctx, func(q repository.Querier) error {
		if err := s.trashRepo.CreateTx(ctx, q, rec); err != nil {
			return err
		}
		return strategy.Remove(ctx, q, itemID)
	})
	if err != nil {
		return model.TrashRecord{}, err
	}

	s.recordAudit(model.AuditActionSoftDelete, actor, itemType, itemID, model.AuditStatusSuccess, "", map[string]any{
		"trash_record_id": rec.ID,
		"expires_at":      rec.ExpiresAt,
	})
	return rec, nil
}

// List returns live trash records. It is a pure read; expired records stay
// visible until CleanupExpired runs.
func (s *TrashService) List(ctx context.Context, itemType string, page int, limit int) ([]model.TrashRecord, model.Meta, error) {
	return s.trashRepo.List(ctx, model.TrashQuery{ItemType: itemType, Page: page, Limit: limit})
}

// Resolve applies a terminal action to a live record. A restore that fails on
// a uniqueness or primary-key collision consumes the record: it is marked
// permanently deleted rather than left retryable forever.
func (s *TrashService) Resolve(ctx context.Context, recordID string, action string, actor model.AuditActor) (model.TrashRecord, error) {
	rec, err := s.trashRepo.FindLiveByID(ctx, recordID)
	if err != nil {
		return model.TrashRecord{}, err
	}

	switch action {
	case model.TrashActionDelete:
		if err := s.trashRepo.MarkPurged(ctx, recordID); err != nil {
			return model.TrashRecord{}, err
		}
		rec.PermanentlyDeleted = true
		s.recordAudit(model.AuditActionDelete, actor, rec.ItemType, rec.ItemID, model.AuditStatusSuccess, "", map[string]any{
			"trash_record_id": rec.ID,
		})
		return rec, nil

	case model.TrashActionRestore:
		return s.restore(ctx, rec, actor)

	default:
		return model.TrashRecord{}, fmt.Errorf("%w: action %q", model.ErrInvalidInput, action)
	}
}

func (s *TrashService) restore(ctx context.Context, rec model.TrashRecord, actor model.AuditActor) (model.TrashRecord, error) {
	strategy, ok := s.strategies.Lookup(rec.ItemType)
	if !ok {
		// A missing strategy is a configuration gap, not a data conflict;
		// the record stays live.
		return model.TrashRecord{}, fmt.Errorf("%w: %s", model.ErrUnsupportedItemType, rec.ItemType)
	}

	restoredAt := s.now()
	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		if err := strategy.Restore(ctx, q, rec.ItemID, rec.ItemData); err != nil {
			return err
		}
		return s.trashRepo.MarkRestoredTx(ctx, q, rec.ID, restoredAt)
	})
	if err != nil {
		if isConflict(err) {
			if purgeErr := s.trashRepo.MarkPurged(ctx, rec.ID); purgeErr != nil {
				slog.Error("purge after failed restore", "record_id", rec.ID, "error", purgeErr)
			}
			s.recordAudit(model.AuditActionRestore, actor, rec.ItemType, rec.ItemID, model.AuditStatusFailure, err.Error(), map[string]any{
				"trash_record_id": rec.ID,
			})
			return model.TrashRecord{}, fmt.Errorf("%w: %s %s", model.ErrRestoreConflict, rec.ItemType, rec.ItemID)
		}
		return model.TrashRecord{}, err
	}

	rec.Restored = true
	rec.RestoredAt = &restoredAt
	s.recordAudit(model.AuditActionRestore, actor, rec.ItemType, rec.ItemID, model.AuditStatusSuccess, "", map[string]any{
		"trash_record_id": rec.ID,
	})
	return rec, nil
}

// CleanupExpired purges every live record past its expiry. Idempotent; meant
// to be triggered on demand by an admin or periodically by an external
// scheduler.
func (s *TrashService) CleanupExpired(ctx context.Context, actor model.AuditActor) (int64, error) {
	purged, err := s.trashRepo.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		s.recordAudit(model.AuditActionCleanup, actor, "TrashRecord", "", model.AuditStatusSuccess, "", map[string]any{
			"purged_count": purged,
		})
	}
	return purged, nil
}

func (s *TrashService) newRecord(itemType string, itemID string, itemData json.RawMessage, deletedBy string) model.TrashRecord {
	deletedAt := s.now()
	return model.TrashRecord{
		ID:        uuid.NewString(),
		ItemType:  itemType,
		ItemID:    itemID,
		ItemData:  itemData,
		DeletedBy: deletedBy,
		DeletedAt: deletedAt,
		ExpiresAt: deletedAt.Add(s.retention),
	}
}

func (s *TrashService) recordAudit(action string, actor model.AuditActor, entityType string, entityID string, status string, errText string, metadata map[string]any) {
	if s.audit == nil {
		return
	}

	s.audit.Record(model.AuditEntry{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		OccurredAt: s.now(),
		Status:     status,
		Error:      errText,
		Metadata:   metadata,
	})
}

// isConflict reports whether err is a Postgres unique or primary-key
// violation, the signature of a restore colliding with an existing row.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
