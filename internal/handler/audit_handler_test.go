package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careerboard/internal/model"
)

type mockAuditQuerier struct {
	mock.Mock
}

func (m *mockAuditQuerier) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]model.AuditEntry), args.Get(1).(model.Meta), args.Error(2)
}

func TestAuditHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("passes filters through", func(t *testing.T) {
		svc := &mockAuditQuerier{}
		svc.On("Query", mock.Anything, model.AuditQuery{
			Action:     "RESTORE",
			EntityType: "JobPost",
			From:       "2026-03-01T00:00:00Z",
			Page:       1,
			Limit:      50,
		}).Return([]model.AuditEntry{{ID: "a-1", Action: "RESTORE"}}, model.Meta{Page: 1, Limit: 50, Total: 1}, nil)

		h := NewAuditHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/audit?action=restore&entity_type=JobPost&from=2026-03-01T00:00:00Z", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"a-1"`)
		svc.AssertExpectations(t)
	})

	t.Run("malformed from is a 400, not a database error", func(t *testing.T) {
		svc := &mockAuditQuerier{}

		h := NewAuditHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/audit?from=yesterday", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "BAD_REQUEST")
		svc.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})

	t.Run("malformed to is rejected the same way", func(t *testing.T) {
		svc := &mockAuditQuerier{}

		h := NewAuditHandler(svc)
		req := httptest.NewRequest(http.MethodGet, "/audit?to=2026-13-99", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})
}
