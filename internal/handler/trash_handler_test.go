package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careerboard/internal/model"
)

type mockTrashManager struct {
	mock.Mock
}

func (m *mockTrashManager) List(ctx context.Context, itemType string, page int, limit int) ([]model.TrashRecord, model.Meta, error) {
	args := m.Called(ctx, itemType, page, limit)
	return args.Get(0).([]model.TrashRecord), args.Get(1).(model.Meta), args.Error(2)
}

func (m *mockTrashManager) Resolve(ctx context.Context, recordID string, action string, actor model.AuditActor) (model.TrashRecord, error) {
	args := m.Called(ctx, recordID, action, actor)
	return args.Get(0).(model.TrashRecord), args.Error(1)
}

func (m *mockTrashManager) CleanupExpired(ctx context.Context, actor model.AuditActor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTrashManager) SoftDelete(ctx context.Context, itemType string, itemID string, actor model.AuditActor) (model.TrashRecord, error) {
	args := m.Called(ctx, itemType, itemID, actor)
	return args.Get(0).(model.TrashRecord), args.Error(1)
}

func newTrashRouter(svc *mockTrashManager) http.Handler {
	h := NewTrashHandler(svc)
	r := chi.NewRouter()
	r.Get("/trash", h.List)
	r.Post("/trash/cleanup", h.Cleanup)
	r.Post("/trash/{id}", h.Resolve)
	r.Delete("/jobs/{id}", h.SoftDeleteByKind(model.ItemKindJobPost))
	return r
}

func TestTrashHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("passes filters through and wraps results", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("List", mock.Anything, "JobPost", 2, 10).
			Return([]model.TrashRecord{{ID: "rec-1", ItemType: "JobPost"}}, model.Meta{Page: 2, Limit: 10, Total: 11}, nil)

		req := httptest.NewRequest(http.MethodGet, "/trash?type=JobPost&page=2&limit=10", nil)
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"success":true`)
		require.Contains(t, rec.Body.String(), `"rec-1"`)
		svc.AssertExpectations(t)
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("List", mock.Anything, "", 1, 50).
			Return([]model.TrashRecord{}, model.Meta{Page: 1, Limit: 50}, nil)

		req := httptest.NewRequest(http.MethodGet, "/trash", nil)
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestTrashHandlerResolve(t *testing.T) {
	t.Parallel()

	t.Run("restore action reaches the service", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("Resolve", mock.Anything, "rec-1", model.TrashActionRestore, mock.Anything).
			Return(model.TrashRecord{ID: "rec-1", Restored: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-1", strings.NewReader(`{"action":"restore"}`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "item restored")
		svc.AssertExpectations(t)
	})

	t.Run("delete action reports a permanent delete", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("Resolve", mock.Anything, "rec-1", model.TrashActionDelete, mock.Anything).
			Return(model.TrashRecord{ID: "rec-1", PermanentlyDeleted: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-1", strings.NewReader(`{"action":"delete"}`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "item permanently deleted")
	})

	t.Run("unknown action is rejected without touching the service", func(t *testing.T) {
		svc := &mockTrashManager{}

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-1", strings.NewReader(`{"action":"archive"}`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing record maps to 404", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("Resolve", mock.Anything, "rec-gone", model.TrashActionRestore, mock.Anything).
			Return(model.TrashRecord{}, model.ErrTrashItemNotFound)

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-gone", strings.NewReader(`{"action":"restore"}`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("restore conflict maps to 400 with its own code", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("Resolve", mock.Anything, "rec-1", model.TrashActionRestore, mock.Anything).
			Return(model.TrashRecord{}, model.ErrRestoreConflict)

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-1", strings.NewReader(`{"action":"restore"}`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "RESTORE_CONFLICT")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		svc := &mockTrashManager{}

		req := httptest.NewRequest(http.MethodPost, "/trash/rec-1", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTrashHandlerCleanup(t *testing.T) {
	t.Parallel()

	svc := &mockTrashManager{}
	svc.On("CleanupExpired", mock.Anything, mock.MatchedBy(func(actor model.AuditActor) bool {
		return actor.UserID == "scheduler"
	})).Return(int64(4), nil)

	req := httptest.NewRequest(http.MethodPost, "/trash/cleanup", nil)
	rec := httptest.NewRecorder()
	newTrashRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"purged_count":4`)
	svc.AssertExpectations(t)
}

func TestTrashHandlerSoftDeleteByKind(t *testing.T) {
	t.Parallel()

	t.Run("moves the entity to the trash", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("SoftDelete", mock.Anything, model.ItemKindJobPost, "post-1", mock.Anything).
			Return(model.TrashRecord{ID: "rec-1", ItemType: model.ItemKindJobPost, ItemID: "post-1"}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/jobs/post-1", nil)
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "moved to trash")
		svc.AssertExpectations(t)
	})

	t.Run("unsupported kind maps to 400", func(t *testing.T) {
		svc := &mockTrashManager{}
		svc.On("SoftDelete", mock.Anything, model.ItemKindJobPost, "post-1", mock.Anything).
			Return(model.TrashRecord{}, model.ErrUnsupportedItemType)

		req := httptest.NewRequest(http.MethodDelete, "/jobs/post-1", nil)
		rec := httptest.NewRecorder()
		newTrashRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "UNSUPPORTED_TYPE")
	})
}
