package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"careerboard/internal/model"
	"careerboard/pkg/apierror"
)

type auditQuerier interface {
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

type AuditHandler struct {
	service auditQuerier
}

func NewAuditHandler(service auditQuerier) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// from/to go into timestamptz casts; reject malformed values here so they
	// surface as 400s rather than database errors.
	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))
	for _, raw := range []string{from, to} {
		if raw == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, raw); err != nil {
			writeError(w, apierror.BadRequest("from/to must be RFC 3339 timestamps", raw))
			return
		}
	}

	entries, meta, err := h.service.Query(r.Context(), model.AuditQuery{
		Action:     strings.ToUpper(strings.TrimSpace(query.Get("action"))),
		EntityType: strings.TrimSpace(query.Get("entity_type")),
		ActorID:    strings.TrimSpace(query.Get("actor_id")),
		Status:     strings.TrimSpace(query.Get("status")),
		From:       from,
		To:         to,
		Page:       parseIntOrDefault(query.Get("page"), 1),
		Limit:      parseIntOrDefault(query.Get("limit"), 50),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AuditListData{Items: entries}, &meta)
}
