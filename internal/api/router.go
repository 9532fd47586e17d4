package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/salone-skillshub/skillshub/internal/api/handler"
	"github.com/salone-skillshub/skillshub/internal/api/middleware"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Sessions     ports.SessionAuthenticator
	Auth         ports.AuthService
	Profiles     ports.ProfileService
	Jobs         ports.JobService
	Matches      ports.MatchService
	Applications ports.ApplicationService
	Messages     ports.MessageService
	Uploads      ports.UploadService
}

// Options tunes the router.
type Options struct {
	Production     bool
	SecureCookie   bool
	MaxUploadBytes int64

	// AuthRate and AuthBurst limit /v1/auth requests per client IP.
	// A zero AuthRate disables the limiter.
	AuthRate  float64
	AuthBurst int

	// Liveness and Readiness serve the health checks when set.
	Liveness  echo.HandlerFunc
	Readiness echo.HandlerFunc

	// Metrics exposes /metrics and records HTTP metrics.
	Metrics bool
	Swagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, opts.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	if opts.Metrics {
		e.Use(echoprometheus.NewMiddleware("skillshub"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Health checks (no auth required) ---
	if opts.Liveness != nil {
		e.GET("/health", opts.Liveness)
	}
	if opts.Readiness != nil {
		e.GET("/health/ready", opts.Readiness)
	}

	authn := middleware.Session(svc.Sessions)
	employer := middleware.RBAC(domain.RoleEmployer)
	seeker := middleware.RBAC(domain.RoleJobSeeker)
	owners := middleware.RBAC(domain.RoleEmployer, domain.RoleAdmin)

	v1 := e.Group("/v1")

	// --- Auth ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.SecureCookie)
	auth := v1.Group("/auth")
	if opts.AuthRate > 0 {
		auth.Use(authRateLimiter(opts.AuthRate, opts.AuthBurst))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/logout-all", authHandler.LogoutAll, authn)
	auth.GET("/me", authHandler.Me, authn)
	auth.GET("/verify", authHandler.Verify)

	// --- Profiles and skills ---
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	v1.GET("/skills", profileHandler.Skills)
	profile := v1.Group("/profile", authn)
	profile.PUT("/employer", profileHandler.SaveEmployer, middleware.RBAC(domain.RoleUser, domain.RoleEmployer))
	profile.PUT("/seeker", profileHandler.SaveSeeker, middleware.RBAC(domain.RoleUser, domain.RoleJobSeeker))

	// --- Jobs and matching ---
	jobHandler := handler.NewJobHandler(svc.Jobs)
	matchHandler := handler.NewMatchHandler(svc.Matches)
	applicationHandler := handler.NewApplicationHandler(svc.Applications)

	jobs := v1.Group("/jobs")
	jobs.GET("", jobHandler.List)
	// Static segments are registered before /:id.
	jobs.GET("/mine", jobHandler.Mine, authn, employer)
	jobs.GET("/recommended", matchHandler.Recommended, authn, seeker)
	jobs.GET("/:id", jobHandler.Get, middleware.OptionalSession(svc.Sessions))
	jobs.POST("", jobHandler.Create, authn, employer)
	jobs.PATCH("/:id", jobHandler.Update, authn, owners)
	jobs.DELETE("/:id", jobHandler.Delete, authn, owners)
	jobs.GET("/:id/applications", applicationHandler.ListForJob, authn, owners)

	v1.GET("/talent", matchHandler.Talent, authn, owners)

	// --- Applications ---
	apps := v1.Group("/applications", authn)
	apps.POST("", applicationHandler.Create, seeker)
	apps.GET("/mine", applicationHandler.Mine, seeker)
	apps.GET("/:id", applicationHandler.Get)
	apps.PATCH("/:id", applicationHandler.UpdateStatus, owners)
	apps.DELETE("/:id", applicationHandler.Delete, owners)

	// --- Messages ---
	messageHandler := handler.NewMessageHandler(svc.Messages)
	messages := v1.Group("/messages", authn)
	messages.POST("", messageHandler.Send)
	messages.GET("/threads", messageHandler.Threads)
	messages.GET("/threads/:id", messageHandler.Thread)
	messages.POST("/threads/:id/read", messageHandler.MarkRead)

	// --- Uploads ---
	uploadHandler := handler.NewUploadHandler(svc.Uploads, opts.MaxUploadBytes)
	v1.POST("/uploads", uploadHandler.Upload, authn, middleware.RBAC(domain.RoleJobSeeker, domain.RoleEmployer))
	v1.GET("/portfolio", uploadHandler.Portfolio, authn, seeker)
	v1.DELETE("/portfolio/:id", uploadHandler.DeletePortfolioItem, authn, seeker)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("remote_ip", v.RemoteIP).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func authRateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}
