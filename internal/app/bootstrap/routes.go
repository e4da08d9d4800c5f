// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	analyticsfeature "github.com/dalemusser/assetdesk/internal/app/features/analytics"
	assetsfeature "github.com/dalemusser/assetdesk/internal/app/features/assets"
	assignflowfeature "github.com/dalemusser/assetdesk/internal/app/features/assignflow"
	categoriesfeature "github.com/dalemusser/assetdesk/internal/app/features/categories"
	employeesfeature "github.com/dalemusser/assetdesk/internal/app/features/employees"
	errorsfeature "github.com/dalemusser/assetdesk/internal/app/features/errors"
	healthfeature "github.com/dalemusser/assetdesk/internal/app/features/health"
	homefeature "github.com/dalemusser/assetdesk/internal/app/features/home"
	inventoryfeature "github.com/dalemusser/assetdesk/internal/app/features/inventory"
	maintenancefeature "github.com/dalemusser/assetdesk/internal/app/features/maintenance"
	"github.com/dalemusser/assetdesk/internal/app/system/metrics"
	"github.com/dalemusser/assetdesk/internal/app/system/ratelimit"
	"github.com/dalemusser/assetdesk/internal/app/system/uistate"
	"github.com/dalemusser/assetdesk/internal/app/workflow"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// submitBurst is how many workflow submissions a client may send back to back.
const submitBurst = 5

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connection, schema setup,
// and the Startup hook have completed. It boots the template engine, sets up
// the UI state cookie store and CSRF protection, and mounts every feature
// router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	state, err := uistate.New(uistate.Config{
		Key:    appCfg.SessionKey,
		Name:   appCfg.SessionName,
		Domain: appCfg.SessionDomain,
		Secure: secure,
	}, logger)
	if err != nil {
		logger.Error("ui state store init failed", zap.Error(err))
		return nil, err
	}

	proxies, err := ratelimit.ParseProxies(appCfg.TrustedProxies)
	if err != nil {
		logger.Error("trusted proxies invalid", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)
	r.Use(metrics.Instrument)

	// Operational endpoints sit outside CSRF protection.
	healthHandler := healthfeature.NewHandler(deps.Backend, deps.BackendKind, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(r chi.Router) {
		r.Use(csrfProtect(appCfg, secure, errorsHandler))

		homeHandler := homefeature.NewHandler(deps.Backend, errLog, logger)
		r.Get("/", homeHandler.ServeRoot)

		inventoryHandler := inventoryfeature.NewHandler(deps.Backend, state, errLog, appCfg.PageSize, logger)
		r.Mount("/inventory", inventoryfeature.Routes(inventoryHandler))

		// Assign / unassign workflows
		flowHandler := assignflowfeature.NewHandler(deps.Backend, state, errLog, assignflowfeature.Options{
			RedirectDelay: appCfg.RedirectDelay,
			PageSize:      appCfg.PageSize,
			Limiter:       ratelimit.New(appCfg.SubmitRateLimit, time.Minute, submitBurst),
			Proxies:       proxies,
		}, logger)
		r.Mount("/assign", assignflowfeature.Routes(flowHandler, workflow.ModeAssign))
		r.Mount("/unassign", assignflowfeature.Routes(flowHandler, workflow.ModeUnassign))

		assetsHandler := assetsfeature.NewHandler(deps.Backend, errLog, logger)
		r.Mount("/assets", assetsfeature.Routes(assetsHandler))

		categoriesHandler := categoriesfeature.NewHandler(deps.Backend, state, errLog, logger)
		r.Mount("/categories", categoriesfeature.Routes(categoriesHandler))

		employeesHandler := employeesfeature.NewHandler(deps.Backend, errLog, appCfg.PageSize, logger)
		r.Mount("/employees", employeesfeature.Routes(employeesHandler))

		maintenanceHandler := maintenancefeature.NewHandler(deps.Backend, errLog, appCfg.PageSize, logger)
		r.Mount("/maintenance", maintenancefeature.Routes(maintenanceHandler))

		analyticsHandler := analyticsfeature.NewHandler(deps.Backend, errLog, logger)
		r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler))
	})

	return r, nil
}

// csrfProtect guards every form post. The token key is the first 32 bytes of
// the session key, which ValidateConfig guarantees exist.
func csrfProtect(appCfg AppConfig, secure bool, h *errorsfeature.Handler) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		[]byte(appCfg.SessionKey)[:minSessionKeyLen],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName(appCfg.SessionName+"-csrf"),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(h.CSRFFailure)),
	)
	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Without TLS the origin check must not assume https.
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			guarded.ServeHTTP(w, r)
		})
	}
}
