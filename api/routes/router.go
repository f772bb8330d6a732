package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phonedesk/phonedesk-backend/api/controllers"
	"github.com/phonedesk/phonedesk-backend/api/middleware"
	"github.com/phonedesk/phonedesk-backend/internal/auth"
	phonesvc "github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/internal/reports"
	salesvc "github.com/phonedesk/phonedesk-backend/internal/sales"
	"github.com/phonedesk/phonedesk-backend/pkg/auth/session"
	"github.com/phonedesk/phonedesk-backend/pkg/config"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/metrics"
	"github.com/phonedesk/phonedesk-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Metrics        *metrics.RequestMetrics
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	AuthService    auth.Service
	PhoneService   phonesvc.Service
	ImageService   phonesvc.ImageService
	SalesService   salesvc.Service
	ReportsService reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg), middleware.Idempotency(deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
	})

	// Public inventory reads are owner-agnostic.
	r.Route("/api/v1/phones", func(r chi.Router) {
		r.Get("/", controllers.ListPhones(deps.PhoneService, logg))
		r.Get("/search/{query}", controllers.SearchPhones(deps.PhoneService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Post("/", controllers.CreatePhone(deps.PhoneService, logg))
			r.Get("/stats/summary", controllers.PhoneStatusSummary(deps.PhoneService, logg))
			r.Put("/{phoneId}", controllers.UpdatePhone(deps.PhoneService, logg))
			r.Delete("/{phoneId}", controllers.DeletePhone(deps.PhoneService, logg))
			r.Post("/{phoneId}/sell", controllers.SellPhone(deps.PhoneService, logg))
			r.Post("/{phoneId}/images", controllers.UploadPhoneImages(deps.ImageService, cfg.Media, logg))
			r.Delete("/{phoneId}/images/{imageId}", controllers.DeletePhoneImage(deps.ImageService, logg))
		})

		// Registered after /search and /stats so literal segments win.
		r.Get("/{phoneId}", controllers.GetPhone(deps.PhoneService, logg))
	})

	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/", controllers.ListSales(deps.SalesService, logg))
		r.Get("/summary", controllers.SalesSummary(deps.ReportsService, logg))
		r.Get("/{saleId}", controllers.GetSale(deps.SalesService, logg))
		r.Put("/{saleId}", controllers.UpdateSale(deps.SalesService, logg))
	})

	r.Route("/api/v1/owner", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/profile", controllers.AuthProfile(deps.AuthService, logg))
		r.Put("/profile", controllers.AuthUpdateProfile(deps.AuthService, logg))
		r.Post("/change-password", controllers.AuthChangePassword(deps.AuthService, logg))
	})

	return r
}
