// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	catalogfeature "github.com/dalemusser/vitrine/internal/app/features/catalog"
	healthfeature "github.com/dalemusser/vitrine/internal/app/features/health"
	homesectionsfeature "github.com/dalemusser/vitrine/internal/app/features/homesections"
	loginfeature "github.com/dalemusser/vitrine/internal/app/features/login"
	ordersfeature "github.com/dalemusser/vitrine/internal/app/features/orders"
	productpagefeature "github.com/dalemusser/vitrine/internal/app/features/productpage"
	uploadsfeature "github.com/dalemusser/vitrine/internal/app/features/uploads"
	"github.com/dalemusser/vitrine/internal/app/store/userstore"
	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed.
//
// Two surfaces hang off the router:
//   - /api/*        anonymous storefront reads (no session, no CSRF)
//   - /admin/api/*  back-office JSON API (session auth + CSRF)
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and
	// disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Feature handlers
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	sectionsHandler := homesectionsfeature.NewHandler(deps.MongoDatabase, logger)
	productPageHandler := productpagefeature.NewHandler(deps.MongoDatabase, logger)
	catalogHandler := catalogfeature.NewHandler(deps.MongoDatabase, logger)
	ordersHandler := ordersfeature.NewHandler(deps.MongoDatabase, logger)
	uploadsHandler := uploadsfeature.NewHandler(deps.FileStorage, appCfg.StorageLocalURL, logger)
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)

	r := chi.NewRouter()

	// Global middleware

	// Request timeout: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers (X-Frame-Options, X-Content-Type-Options, etc.)
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health endpoints sit outside session handling.
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Storefront API: anonymous reads, no session, no CSRF.
	r.Route("/api", func(api chi.Router) {
		api.Mount("/home", homesectionsfeature.StorefrontRoutes(sectionsHandler))
		api.Mount("/products", productpagefeature.StorefrontRoutes(productPageHandler))
	})

	// Back-office API: session auth plus CSRF.
	r.Route("/admin/api", func(admin chi.Router) {
		admin.Use(sessionMgr.LoadSessionUser)

		csrfOpts := []csrf.Option{
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.CookieName("vitrine_csrf"),
			csrf.RequestHeader("X-CSRF-Token"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				logger.Warn("CSRF validation failed",
					zap.String("path", req.URL.Path),
					zap.String("method", req.Method),
					zap.String("reason", csrf.FailureReason(req).Error()),
				)
				http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
			})),
		}
		// In dev mode, trust localhost origins for CSRF validation.
		if !secure {
			csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
				"localhost:8080",
				"localhost:3000",
				"127.0.0.1:8080",
				"127.0.0.1:3000",
			}))
		}
		if appCfg.SessionDomain != "" {
			csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
		}
		admin.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

		admin.Mount("/auth", loginfeature.Routes(loginHandler))
		admin.Mount("/sections", homesectionsfeature.AdminRoutes(sectionsHandler, sessionMgr))
		admin.Mount("/product-layout", productpagefeature.AdminRoutes(productPageHandler, sessionMgr))
		admin.Mount("/catalog", catalogfeature.AdminRoutes(catalogHandler, sessionMgr))
		admin.Mount("/orders", ordersfeature.AdminRoutes(ordersHandler, sessionMgr))
		admin.Mount("/uploads", uploadsfeature.Routes(uploadsHandler, sessionMgr))
	})

	logger.Info("HTTP handler built",
		zap.Bool("secure_cookies", secure),
		zap.String("env", coreCfg.Env))

	return r, nil
}
