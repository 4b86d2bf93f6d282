package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"careerboard/internal/middleware"
	"careerboard/internal/model"
	"careerboard/pkg/apierror"
)

type contentService interface {
	CreateJobPost(ctx context.Context, companyID string, req model.CreateJobPostRequest) (model.JobPostDetail, error)
	GetJobPost(ctx context.Context, id string) (model.JobPostDetail, error)
	ListJobPosts(ctx context.Context, page int, limit int) ([]model.JobPost, model.Meta, error)
	CreateThread(ctx context.Context, authorID string, req model.CreateThreadRequest) (model.CommunityThread, error)
	GetThread(ctx context.Context, id string) (model.ThreadDetail, error)
	CreateThreadPost(ctx context.Context, threadID string, authorID string, req model.CreateThreadPostRequest) (model.CommunityPost, error)
}

type ContentHandler struct {
	service contentService
}

func NewContentHandler(service contentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) CreateJobPost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req model.CreateJobPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeError(w, apierror.BadRequest("title is required", ""))
		return
	}

	post, err := h.service.CreateJobPost(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, post, nil)
}

func (h *ContentHandler) GetJobPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetJobPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, post, nil)
}

func (h *ContentHandler) ListJobPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	posts, meta, err := h.service.ListJobPosts(r.Context(),
		parseIntOrDefault(query.Get("page"), 1),
		parseIntOrDefault(query.Get("limit"), 20))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, posts, &meta)
}

func (h *ContentHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req model.CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeError(w, apierror.BadRequest("title is required", ""))
		return
	}

	thread, err := h.service.CreateThread(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, thread, nil)
}

func (h *ContentHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.service.GetThread(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, thread, nil)
}

func (h *ContentHandler) CreateThreadPost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req model.CreateThreadPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		writeError(w, apierror.BadRequest("body is required", ""))
		return
	}

	post, err := h.service.CreateThreadPost(r.Context(), chi.URLParam(r, "id"), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, post, nil)
}
