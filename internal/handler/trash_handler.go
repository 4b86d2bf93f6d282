package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"careerboard/internal/model"
	"careerboard/pkg/apierror"
)

type trashManager interface {
	List(ctx context.Context, itemType string, page int, limit int) ([]model.TrashRecord, model.Meta, error)
	Resolve(ctx context.Context, recordID string, action string, actor model.AuditActor) (model.TrashRecord, error)
	CleanupExpired(ctx context.Context, actor model.AuditActor) (int64, error)
	SoftDelete(ctx context.Context, itemType string, itemID string, actor model.AuditActor) (model.TrashRecord, error)
}

type TrashHandler struct {
	service trashManager
}

func NewTrashHandler(service trashManager) *TrashHandler {
	return &TrashHandler{service: service}
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	records, meta, err := h.service.List(r.Context(),
		strings.TrimSpace(query.Get("type")),
		parseIntOrDefault(query.Get("page"), 1),
		parseIntOrDefault(query.Get("limit"), 50))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.TrashListData{Items: records}, &meta)
}

func (h *TrashHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		writeError(w, apierror.BadRequest("trash record id is required", "id"))
		return
	}

	var payload model.TrashActionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	action := strings.ToLower(strings.TrimSpace(payload.Action))
	if action != model.TrashActionRestore && action != model.TrashActionDelete {
		writeError(w, apierror.BadRequest("action must be \"restore\" or \"delete\"", payload.Action))
		return
	}

	rec, err := h.service.Resolve(r.Context(), recordID, action, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	message := "item restored"
	if action == model.TrashActionDelete {
		message = "item permanently deleted"
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": message, "record": rec}, nil)
}

func (h *TrashHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	purged, err := h.service.CleanupExpired(r.Context(), schedulerActor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"purged_count": purged}, nil)
}

// SoftDeleteByKind returns a DELETE handler that moves one entity kind to the
// trash. The entity routes share this.
func (h *TrashHandler) SoftDeleteByKind(itemType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")
		if itemID == "" {
			writeError(w, apierror.BadRequest("entity id is required", "id"))
			return
		}

		rec, err := h.service.SoftDelete(r.Context(), itemType, itemID, actorFromRequest(r))
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, http.StatusOK, map[string]any{"message": "moved to trash", "record": rec}, nil)
	}
}
