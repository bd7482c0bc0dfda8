package router

import (
	"net/http"
	"time"

	"github.com/LuqmanKt98/surfdims/internal/adapter/http/handler"
	"github.com/LuqmanKt98/surfdims/internal/adapter/http/middleware"
	"github.com/LuqmanKt98/surfdims/internal/platform/logger"
	"github.com/LuqmanKt98/surfdims/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 30 * time.Second

type Config struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// New builds the service router. Public routes accept an optional token,
// the rest require one.
func New(h *handler.Handler, cfg Config, m *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	auth := middleware.NewAuth(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics(m))
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth())
			setupFeedRoutes(r, h)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			setupListingRoutes(r, h)
			setupAccountRoutes(r, h)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminOnly())
			setupAdminRoutes(r, h)
		})
	})
	return r
}

func setupFeedRoutes(r chi.Router, h *handler.Handler) {
	r.Get("/listings/{id}", h.GetListing)
	r.Route("/feed/sessions", func(r chi.Router) {
		r.Post("/", h.OpenSession)
		r.Get("/{sid}", h.GetPage)
		r.Put("/{sid}/filters", h.ApplyFilters)
		r.Post("/{sid}/clear", h.ClearFilters)
		r.Put("/{sid}/view", h.SwitchView)
		r.Put("/{sid}/sort", h.ChangeSort)
		r.Post("/{sid}/more", h.ShowMore)
	})
}

func setupListingRoutes(r chi.Router, h *handler.Handler) {
	r.Post("/listings", h.CreateListings)
	r.Put("/listings/{id}", h.UpdateListing)
	r.Delete("/listings/{id}", h.DeleteListing)
	r.Post("/listings/{id}/renew", h.RenewListing)
	r.Post("/listings/{id}/relist", h.RelistListing)
	r.Post("/listings/{id}/sold", h.MarkSold)
	r.Post("/images", h.UploadImage)
	r.Post("/donations", h.Donate)
}

func setupAccountRoutes(r chi.Router, h *handler.Handler) {
	r.Get("/me", h.Me)
	r.Put("/me", h.SyncProfile)
	r.Post("/favorites/{id}", h.ToggleFavorite)
	r.Post("/alerts", h.AddAlert)
	r.Post("/alerts/search", h.SaveSearch)
	r.Delete("/alerts/{id}", h.DeleteAlert)
	r.Get("/notifications", h.ListNotifications)
	r.Delete("/notifications", h.ClearNotifications)
	r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
	r.Post("/notifications/{id}/read", h.MarkNotificationRead)
}

func setupAdminRoutes(r chi.Router, h *handler.Handler) {
	r.Delete("/listings/{id}", h.AdminDeleteListing)
	r.Post("/users/{id}/block", h.ToggleBlock)
	r.Get("/ads", h.ListAds)
	r.Post("/ads", h.CreateAd)
	r.Put("/ads/{id}", h.UpdateAd)
	r.Delete("/ads/{id}", h.DeleteAd)
	r.Get("/donations", h.Donations)
	r.Post("/lifecycle/sweep", h.RunSweep)
}
