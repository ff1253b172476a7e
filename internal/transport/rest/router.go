package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/visitor-management/internal/auth"
	"github.com/frahmantamala/visitor-management/internal/photo"
	"github.com/frahmantamala/visitor-management/internal/transport/middleware"
	"github.com/frahmantamala/visitor-management/internal/transport/swagger"
	"github.com/frahmantamala/visitor-management/internal/user"
	"github.com/frahmantamala/visitor-management/internal/visitor"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything RegisterAllRoutes mounts. OpenAPI may be nil.
type Handlers struct {
	Health  *HealthHandler
	Auth    *auth.Handler
	RBAC    *auth.RBACAuthorization
	User    *user.Handler
	Visitor *visitor.Handler
	Photo   *photo.Handler
	OpenAPI []byte
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.Auth.WriteError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.Auth.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/", h.Health.rootHandler)
	router.Get("/health", h.Health.healthCheckHandler)
	router.Get("/ping", h.Health.pingHandler)

	if h.OpenAPI != nil {
		router.Get(swagger.DocumentPath, swagger.DocumentHandler(h.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Post("/signup", h.User.Signup)
	router.Post("/login", h.Auth.Login)
	router.Get("/uploads/{filename}", h.Photo.Serve)

	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)

		pr.Route("/visitors", func(vr chi.Router) {
			vr.With(h.RBAC.RequireAction(auth.ActionCreateVisitor)).Post("/", h.Visitor.CreateVisitor)
			vr.With(h.RBAC.RequireAction(auth.ActionListVisitors)).Get("/", h.Visitor.ListVisitors)
			vr.With(h.RBAC.RequireAction(auth.ActionApproveVisitor)).Put("/approve/{id}", h.Visitor.ApproveVisitor)
		})
	})
}
