package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careerboard/internal/model"
	"careerboard/internal/repository"
)

type mockTrashStore struct {
	mock.Mock
}

func (m *mockTrashStore) Create(ctx context.Context, rec model.TrashRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockTrashStore) CreateTx(ctx context.Context, q repository.Querier, rec model.TrashRecord) error {
	args := m.Called(ctx, q, rec)
	return args.Error(0)
}

func (m *mockTrashStore) FindLiveByID(ctx context.Context, id string) (model.TrashRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TrashRecord), args.Error(1)
}

func (m *mockTrashStore) List(ctx context.Context, query model.TrashQuery) ([]model.TrashRecord, model.Meta, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]model.TrashRecord), args.Get(1).(model.Meta), args.Error(2)
}

func (m *mockTrashStore) MarkRestoredTx(ctx context.Context, q repository.Querier, id string, at time.Time) error {
	args := m.Called(ctx, q, id, at)
	return args.Error(0)
}

func (m *mockTrashStore) MarkPurged(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTrashStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockStrategy struct {
	mock.Mock
	kind string
}

func (m *mockStrategy) Kind() string { return m.kind }

func (m *mockStrategy) Snapshot(ctx context.Context, itemID string) (json.RawMessage, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockStrategy) Remove(ctx context.Context, q repository.Querier, itemID string) error {
	args := m.Called(ctx, q, itemID)
	return args.Error(0)
}

func (m *mockStrategy) Restore(ctx context.Context, q repository.Querier, itemID string, data json.RawMessage) error {
	args := m.Called(ctx, q, itemID, data)
	return args.Error(0)
}

// stubTxRunner runs the callback directly with a nil querier; the mocks above
// never touch it.
type stubTxRunner struct{}

func (stubTxRunner) InTx(_ context.Context, fn func(q repository.Querier) error) error {
	return fn(nil)
}

type captureAudit struct {
	entries []model.AuditEntry
}

func (c *captureAudit) Record(entry model.AuditEntry) {
	c.entries = append(c.entries, entry)
}

func newTestService(store *mockTrashStore, strategies *StrategyRegistry, audit *captureAudit, retention time.Duration) *TrashService {
	svc := NewTrashService(store, stubTxRunner{}, strategies, audit, retention)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

func TestTrashServiceSoftDelete(t *testing.T) {
	t.Parallel()

	actor := model.AuditActor{UserID: "admin-1", Role: model.RoleAdmin}

	t.Run("snapshots, inserts the record and removes the live rows", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindJobPost}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(strategy), audit, DefaultRetention)

		snapshot := json.RawMessage(`{"id":"post-1","title":"Go engineer"}`)
		strategy.On("Snapshot", mock.Anything, "post-1").Return(snapshot, nil)
		strategy.On("Remove", mock.Anything, nil, "post-1").Return(nil)
		store.On("CreateTx", mock.Anything, nil, mock.MatchedBy(func(rec model.TrashRecord) bool {
			return rec.ItemType == model.ItemKindJobPost &&
				rec.ItemID == "post-1" &&
				rec.DeletedBy == "admin-1" &&
				string(rec.ItemData) == string(snapshot)
		})).Return(nil)

		rec, err := svc.SoftDelete(context.Background(), model.ItemKindJobPost, "post-1", actor)
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		require.False(t, rec.Restored)
		require.False(t, rec.PermanentlyDeleted)

		store.AssertExpectations(t)
		strategy.AssertExpectations(t)

		require.Len(t, audit.entries, 1)
		require.Equal(t, model.AuditActionSoftDelete, audit.entries[0].Action)
		require.Equal(t, model.AuditStatusSuccess, audit.entries[0].Status)
		require.Equal(t, "admin-1", audit.entries[0].Actor.UserID)
	})

	t.Run("expiry is deletion time plus retention", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindBlogPost}
		retention := 48 * time.Hour
		svc := newTestService(store, NewStrategyRegistry(strategy), &captureAudit{}, retention)

		strategy.On("Snapshot", mock.Anything, "blog-1").Return(json.RawMessage(`{}`), nil)
		strategy.On("Remove", mock.Anything, nil, "blog-1").Return(nil)
		store.On("CreateTx", mock.Anything, nil, mock.Anything).Return(nil)

		rec, err := svc.SoftDelete(context.Background(), model.ItemKindBlogPost, "blog-1", actor)
		require.NoError(t, err)
		require.Equal(t, retention, rec.ExpiresAt.Sub(rec.DeletedAt))
	})

	t.Run("unknown kind is rejected before anything runs", func(t *testing.T) {
		store := &mockTrashStore{}
		svc := newTestService(store, NewStrategyRegistry(), &captureAudit{}, DefaultRetention)

		_, err := svc.SoftDelete(context.Background(), "Invoice", "inv-1", actor)
		require.ErrorIs(t, err, model.ErrUnsupportedItemType)
		store.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("snapshot failure leaves no trash record", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindUser}
		svc := newTestService(store, NewStrategyRegistry(strategy), &captureAudit{}, DefaultRetention)

		strategy.On("Snapshot", mock.Anything, "u-1").Return(nil, model.ErrUserNotFound)

		_, err := svc.SoftDelete(context.Background(), model.ItemKindUser, "u-1", actor)
		require.ErrorIs(t, err, model.ErrUserNotFound)
		store.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTrashServiceResolve(t *testing.T) {
	t.Parallel()

	actor := model.AuditActor{UserID: "admin-1", Role: model.RoleAdmin}
	liveRecord := func() model.TrashRecord {
		return model.TrashRecord{
			ID:       "rec-1",
			ItemType: model.ItemKindJobPost,
			ItemID:   "post-1",
			ItemData: json.RawMessage(`{"id":"post-1"}`),
		}
	}

	t.Run("delete marks the record purged", func(t *testing.T) {
		store := &mockTrashStore{}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(), audit, DefaultRetention)

		store.On("FindLiveByID", mock.Anything, "rec-1").Return(liveRecord(), nil)
		store.On("MarkPurged", mock.Anything, "rec-1").Return(nil)

		rec, err := svc.Resolve(context.Background(), "rec-1", model.TrashActionDelete, actor)
		require.NoError(t, err)
		require.True(t, rec.PermanentlyDeleted)

		require.Len(t, audit.entries, 1)
		require.Equal(t, model.AuditActionDelete, audit.entries[0].Action)
	})

	t.Run("restore rebuilds the entity and marks the record restored", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindJobPost}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(strategy), audit, DefaultRetention)

		rec := liveRecord()
		store.On("FindLiveByID", mock.Anything, "rec-1").Return(rec, nil)
		strategy.On("Restore", mock.Anything, nil, "post-1", rec.ItemData).Return(nil)
		store.On("MarkRestoredTx", mock.Anything, nil, "rec-1", mock.Anything).Return(nil)

		restored, err := svc.Resolve(context.Background(), "rec-1", model.TrashActionRestore, actor)
		require.NoError(t, err)
		require.True(t, restored.Restored)
		require.NotNil(t, restored.RestoredAt)

		require.Len(t, audit.entries, 1)
		require.Equal(t, model.AuditActionRestore, audit.entries[0].Action)
		require.Equal(t, model.AuditStatusSuccess, audit.entries[0].Status)
	})

	t.Run("restore conflict consumes the record", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindJobPost}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(strategy), audit, DefaultRetention)

		rec := liveRecord()
		store.On("FindLiveByID", mock.Anything, "rec-1").Return(rec, nil)
		strategy.On("Restore", mock.Anything, nil, "post-1", rec.ItemData).Return(uniqueViolation())
		store.On("MarkPurged", mock.Anything, "rec-1").Return(nil)

		_, err := svc.Resolve(context.Background(), "rec-1", model.TrashActionRestore, actor)
		require.ErrorIs(t, err, model.ErrRestoreConflict)

		store.AssertCalled(t, "MarkPurged", mock.Anything, "rec-1")
		require.Len(t, audit.entries, 1)
		require.Equal(t, model.AuditStatusFailure, audit.entries[0].Status)
	})

	t.Run("non-conflict restore failure leaves the record live", func(t *testing.T) {
		store := &mockTrashStore{}
		strategy := &mockStrategy{kind: model.ItemKindJobPost}
		svc := newTestService(store, NewStrategyRegistry(strategy), &captureAudit{}, DefaultRetention)

		rec := liveRecord()
		bootErr := errors.New("connection refused")
		store.On("FindLiveByID", mock.Anything, "rec-1").Return(rec, nil)
		strategy.On("Restore", mock.Anything, nil, "post-1", rec.ItemData).Return(bootErr)

		_, err := svc.Resolve(context.Background(), "rec-1", model.TrashActionRestore, actor)
		require.ErrorIs(t, err, bootErr)
		store.AssertNotCalled(t, "MarkPurged", mock.Anything, mock.Anything)
	})

	t.Run("restore without a registered strategy leaves the record live", func(t *testing.T) {
		store := &mockTrashStore{}
		svc := newTestService(store, NewStrategyRegistry(), &captureAudit{}, DefaultRetention)

		store.On("FindLiveByID", mock.Anything, "rec-1").Return(liveRecord(), nil)

		_, err := svc.Resolve(context.Background(), "rec-1", model.TrashActionRestore, actor)
		require.ErrorIs(t, err, model.ErrUnsupportedItemType)
		store.AssertNotCalled(t, "MarkPurged", mock.Anything, mock.Anything)
	})

	t.Run("purged or restored records are not found", func(t *testing.T) {
		store := &mockTrashStore{}
		svc := newTestService(store, NewStrategyRegistry(), &captureAudit{}, DefaultRetention)

		store.On("FindLiveByID", mock.Anything, "rec-gone").
			Return(model.TrashRecord{}, model.ErrTrashItemNotFound)

		_, err := svc.Resolve(context.Background(), "rec-gone", model.TrashActionRestore, actor)
		require.ErrorIs(t, err, model.ErrTrashItemNotFound)
	})

	t.Run("unknown action is invalid input", func(t *testing.T) {
		store := &mockTrashStore{}
		svc := newTestService(store, NewStrategyRegistry(), &captureAudit{}, DefaultRetention)

		store.On("FindLiveByID", mock.Anything, "rec-1").Return(liveRecord(), nil)

		_, err := svc.Resolve(context.Background(), "rec-1", "archive", actor)
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestTrashServiceCleanupExpired(t *testing.T) {
	t.Parallel()

	actor := model.AuditActor{UserID: "scheduler"}

	t.Run("purges expired records and audits the sweep", func(t *testing.T) {
		store := &mockTrashStore{}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(), audit, DefaultRetention)

		store.On("PurgeExpired", mock.Anything, svc.now()).Return(int64(3), nil)

		purged, err := svc.CleanupExpired(context.Background(), actor)
		require.NoError(t, err)
		require.Equal(t, int64(3), purged)

		require.Len(t, audit.entries, 1)
		require.Equal(t, model.AuditActionCleanup, audit.entries[0].Action)
		require.Equal(t, int64(3), audit.entries[0].Metadata["purged_count"])
	})

	t.Run("a sweep with nothing to purge stays silent", func(t *testing.T) {
		store := &mockTrashStore{}
		audit := &captureAudit{}
		svc := newTestService(store, NewStrategyRegistry(), audit, DefaultRetention)

		store.On("PurgeExpired", mock.Anything, svc.now()).Return(int64(0), nil)

		purged, err := svc.CleanupExpired(context.Background(), actor)
		require.NoError(t, err)
		require.Zero(t, purged)
		require.Empty(t, audit.entries)
	})
}

func TestMoveToTrashValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockTrashStore{}, NewStrategyRegistry(), &captureAudit{}, DefaultRetention)

	_, err := svc.MoveToTrash(context.Background(), "", "id-1", nil, "u-1")
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.MoveToTrash(context.Background(), model.ItemKindUser, "  ", nil, "u-1")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}
