package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"testimonials/internal/auth"
	"testimonials/internal/handlers"
	"testimonials/internal/handlers/api"
	"testimonials/internal/middleware"
	"testimonials/internal/store"
	"testimonials/internal/testimonials"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Store   store.Store
	Service *testimonials.Service
	Gate    *auth.Gate
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(deps.Gate)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(deps.Service, s.Cfg)
	submitHandler := handlers.NewSubmitHandler(deps.Service, s.Cfg)
	authHandler := handlers.NewAuthHandler(deps.Gate, s.Cfg, s.Logger)
	adminHandler := handlers.NewAdminHandler(deps.Service, s.Cfg)

	apiTestimonials := api.NewTestimonialHandler(deps.Service)
	apiAuth := api.NewAuthHandler(deps.Gate, s.Logger)
	apiAdmin := api.NewAdminHandler(deps.Service)
	apiHealth := api.NewHealthHandler(deps.Store)

	// Operational endpoints
	s.App.Get("/healthz", apiHealth.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public pages
	s.App.Get("/", authMiddleware.LoadAdmin, publicHandler.Index)
	s.App.Get("/submit", authMiddleware.LoadAdmin, submitHandler.Form)
	s.App.Post("/submit", authMiddleware.LoadAdmin, submitHandler.Create)

	// Admin gate
	s.App.Get("/admin/login", authHandler.LoginPage)
	s.App.Post("/admin/login", authHandler.Login)
	s.App.Post("/admin/logout", authHandler.Logout)

	// Moderation (session flag required)
	s.App.Get("/admin", authMiddleware.RequireAdmin, adminHandler.Index)
	s.App.Get("/admin/list", authMiddleware.RequireAdmin, adminHandler.List)
	s.App.Post("/admin/testimonials/:id/status", authMiddleware.RequireAdmin, adminHandler.UpdateStatus)
	s.App.Post("/admin/testimonials/:id/certify", authMiddleware.RequireAdmin, adminHandler.Certify)
	s.App.Delete("/admin/testimonials/:id", authMiddleware.RequireAdmin, adminHandler.Delete)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/testimonials", apiTestimonials.List)
	apiGroup.Post("/testimonials", apiTestimonials.Create)
	apiGroup.Post("/auth/login", apiAuth.Login)
	apiGroup.Post("/auth/logout", apiAuth.Logout)
	apiGroup.Get("/auth/session", apiAuth.Session)

	apiGroup.Get("/admin/testimonials", authMiddleware.RequireAdminAPI, apiAdmin.List)
	apiGroup.Put("/admin/testimonials/:id/status", authMiddleware.RequireAdminAPI, apiAdmin.UpdateStatus)
	apiGroup.Put("/admin/testimonials/:id/certification", authMiddleware.RequireAdminAPI, apiAdmin.SetCertification)
	apiGroup.Post("/admin/testimonials/:id/certification/toggle", authMiddleware.RequireAdminAPI, apiAdmin.ToggleCertification)
	apiGroup.Delete("/admin/testimonials/:id", authMiddleware.RequireAdminAPI, apiAdmin.Delete)
}
