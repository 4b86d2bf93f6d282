package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"careerboard/internal/config"
	"careerboard/internal/handler"
	"careerboard/internal/middleware"
	"careerboard/internal/model"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	trashHandler *handler.TrashHandler,
	auditHandler *handler.AuditHandler,
	contentHandler *handler.ContentHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	admins := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", authHandler.Login)
			auth.Post("/register", authHandler.Register)
			auth.Post("/refresh", authHandler.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		api.Route("/trash", func(trash chi.Router) {
			// Scheduler calls cleanup with a bearer token instead of a session.
			trash.With(authMiddleware.RequireRolesOrToken(cfg.CleanupToken, model.RoleAdmin, model.RoleSuperAdmin)).
				Post("/cleanup", trashHandler.Cleanup)

			trash.With(authMiddleware.RequireAuth, admins).Get("/", trashHandler.List)
			trash.With(authMiddleware.RequireAuth, admins).Post("/{id}", trashHandler.Resolve)
		})

		api.With(authMiddleware.RequireAuth, admins).Get("/audit", auditHandler.List)

		api.Route("/jobs", func(jobs chi.Router) {
			jobs.Get("/", contentHandler.ListJobPosts)
			jobs.Get("/{id}", contentHandler.GetJobPost)
			jobs.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleCompany, model.RoleAdmin, model.RoleSuperAdmin)).
				Post("/", contentHandler.CreateJobPost)
			jobs.With(authMiddleware.RequireAuth, admins).
				Delete("/{id}", trashHandler.SoftDeleteByKind(model.ItemKindJobPost))
		})

		api.Route("/threads", func(threads chi.Router) {
			threads.Get("/{id}", contentHandler.GetThread)
			threads.With(authMiddleware.RequireAuth).Post("/", contentHandler.CreateThread)
			threads.With(authMiddleware.RequireAuth).Post("/{id}/posts", contentHandler.CreateThreadPost)
			threads.With(authMiddleware.RequireAuth, admins).
				Delete("/{id}", trashHandler.SoftDeleteByKind(model.ItemKindCommunityThread))
		})

		api.With(authMiddleware.RequireAuth, admins).
			Delete("/users/{id}", trashHandler.SoftDeleteByKind(model.ItemKindUser))
		api.With(authMiddleware.RequireAuth, admins).
			Delete("/blog/{id}", trashHandler.SoftDeleteByKind(model.ItemKindBlogPost))
		api.With(authMiddleware.RequireAuth, admins).
			Delete("/challenges/{id}", trashHandler.SoftDeleteByKind(model.ItemKindChallenge))
	})

	return r
}
