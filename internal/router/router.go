package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"instiwise-api/internal/config"
	"instiwise-api/internal/handler"
	"instiwise-api/internal/middleware"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Project     *handler.ProjectHandler
	News        *handler.NewsHandler
	Event       *handler.EventHandler
	DemoRequest *handler.DemoRequestHandler
	Dashboard   *handler.DashboardHandler
	Health      *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/setup-username", h.Auth.SetupUsername)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth).Post("/me/change-password", h.Auth.ChangePassword)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)
			users.With(authMiddleware.RequireAdmin).Get("/", h.User.List)
			users.Get("/{id}", h.User.Get)
			users.Put("/{id}", h.User.Update)
			users.Delete("/{id}", h.User.Delete)
			users.With(authMiddleware.RequireAdmin).Patch("/{id}/toggle-admin", h.User.ToggleAdmin)
			users.With(authMiddleware.RequireAdmin).Patch("/{id}/password", h.User.SetPassword)
		})

		api.Route("/projects", func(projects chi.Router) {
			projects.Use(authMiddleware.RequireAuth)
			projects.Post("/", h.Project.Create)
			projects.Get("/", h.Project.List)
			projects.Get("/me", h.Project.Mine)
			projects.Get("/user/{userID}", h.Project.ByUser)
			projects.Get("/{id}", h.Project.Get)
			projects.Put("/{id}", h.Project.Update)
			projects.Delete("/{id}", h.Project.Delete)
			projects.Post("/{id}/like", h.Project.ToggleLike)
		})

		api.Route("/news", func(news chi.Router) {
			news.Use(authMiddleware.RequireAuth)
			news.With(authMiddleware.RequireAdmin).Post("/", h.News.Create)
			news.Get("/", h.News.List)
			news.Get("/{id}", h.News.Get)
			news.With(authMiddleware.RequireAdmin).Put("/{id}", h.News.Update)
			news.With(authMiddleware.RequireAdmin).Delete("/{id}", h.News.Delete)
			news.Post("/{id}/like", h.News.Like)
			news.Post("/{id}/dislike", h.News.Dislike)
			news.Post("/{id}/view", h.News.View)
		})

		api.Route("/events", func(events chi.Router) {
			events.Use(authMiddleware.RequireAuth)
			events.Post("/", h.Event.Create)
			events.Get("/", h.Event.List)
			events.Get("/favorites", h.Event.Favorites)
			events.Get("/{id}", h.Event.Get)
			events.Put("/{id}", h.Event.Update)
			events.Delete("/{id}", h.Event.Delete)
			events.Patch("/{id}/favorite", h.Event.ToggleFavorite)
		})

		api.Route("/demo-requests", func(demos chi.Router) {
			demos.Post("/", h.DemoRequest.Create)
			demos.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Get("/", h.DemoRequest.List)
			demos.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Get("/{id}", h.DemoRequest.Get)
			demos.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Patch("/{id}", h.DemoRequest.Update)
			demos.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Delete("/{id}", h.DemoRequest.Delete)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Get("/dashboard/metrics", h.Dashboard.Metrics)
	})

	return r
}
