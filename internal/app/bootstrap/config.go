// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minSessionKeyLen is the shortest key accepted for the UI state cookie and
// the CSRF token.
const minSessionKeyLen = 32

// appConfigKeys defines the configuration keys for AssetDesk.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend, mongo_uri, session_name, etc.
//   - Environment variables: ASSETDESK_BACKEND, ASSETDESK_MONGO_URI, etc.
//   - Command-line flags: --backend, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend", Default: BackendMongo, Desc: "Data backend: 'mongo' or 'rest'"},

	// REST backend
	{Name: "backend_url", Default: "", Desc: "Base URL of the asset-management API (rest backend)"},
	{Name: "backend_timeout", Default: "30s", Desc: "Per-request timeout for backend calls"},
	{Name: "backend_retries", Default: 3, Desc: "Attempts for idempotent backend reads (minimum 1)"},
	{Name: "backend_retry_backoff", Default: "500ms", Desc: "Initial retry backoff, doubled per attempt"},
	{Name: "backend_rate_limit", Default: "0", Desc: "Backend requests per second (0 = unlimited)"},
	{Name: "backend_rate_burst", Default: 10, Desc: "Burst size for the backend rate limiter"},
	{Name: "backend_client_id", Default: "", Desc: "OAuth2 client ID for the backend (blank disables auth)"},
	{Name: "backend_client_secret", Default: "", Desc: "OAuth2 client secret for the backend"},
	{Name: "backend_token_url", Default: "", Desc: "OAuth2 token endpoint for the backend"},
	{Name: "backend_scopes", Default: "", Desc: "Comma-separated OAuth2 scopes"},

	// MongoDB
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "assetdesk", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},

	// UI state cookie
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key, at least 32 bytes (must be strong in production)"},
	{Name: "session_name", Default: "assetdesk-ui", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "seed_demo_data", Default: false, Desc: "Seed empty collections with demo data (mongo backend)"},
	{Name: "redirect_delay", Default: "1.5s", Desc: "Delay before the workflow success screen redirects"},
	{Name: "page_size", Default: 25, Desc: "Rows per page on list screens"},
	{Name: "inventory_refresh", Default: "5m", Desc: "Refresh interval for the inventory gauges on /metrics (0 disables)"},
	{Name: "submit_rate_limit", Default: 30, Desc: "Workflow submissions per client per minute (0 = unlimited)"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy addresses/CIDRs allowed to set X-Forwarded-For"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ASSETDESK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ASSETDESK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		Backend: strings.ToLower(strings.TrimSpace(appValues.String("backend"))),

		BackendURL:          appValues.String("backend_url"),
		BackendTimeout:      appValues.Duration("backend_timeout", 30*time.Second),
		BackendRetries:      appValues.Int("backend_retries"),
		BackendRetryBackoff: appValues.Duration("backend_retry_backoff", 500*time.Millisecond),
		BackendRateBurst:    appValues.Int("backend_rate_burst"),
		BackendClientID:     appValues.String("backend_client_id"),
		BackendClientSecret: appValues.String("backend_client_secret"),
		BackendTokenURL:     appValues.String("backend_token_url"),
		BackendScopes:       splitList(appValues.String("backend_scopes")),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		SeedDemoData:  appValues.Bool("seed_demo_data"),
		RedirectDelay: appValues.Duration("redirect_delay", 1500*time.Millisecond),
		PageSize:      appValues.Int("page_size"),

		InventoryRefresh: appValues.Duration("inventory_refresh", 5*time.Minute),
		SubmitRateLimit:  appValues.Int("submit_rate_limit"),
		TrustedProxies:   splitList(appValues.String("trusted_proxies")),
	}

	rl, err := parseRate(appValues.String("backend_rate_limit"))
	if err != nil {
		return nil, AppConfig{}, err
	}
	appCfg.BackendRateLimit = rl

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return validateApp(appCfg, logger)
}

func validateApp(appCfg AppConfig, logger *zap.Logger) error {
	var problems []error

	switch appCfg.Backend {
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			problems = append(problems, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			problems = append(problems, errors.New("mongo_database is required"))
		}
	case BackendREST:
		if strings.TrimSpace(appCfg.BackendURL) == "" {
			problems = append(problems, errors.New("backend_url is required when backend is 'rest'"))
		}
		if (appCfg.BackendClientID == "") != (appCfg.BackendTokenURL == "") {
			problems = append(problems, errors.New("backend_client_id and backend_token_url must be set together"))
		}
	default:
		problems = append(problems, fmt.Errorf("backend must be 'mongo' or 'rest', got %q", appCfg.Backend))
	}

	if appCfg.BackendRetries < 1 {
		problems = append(problems, fmt.Errorf("backend_retries must be at least 1, got %d", appCfg.BackendRetries))
	}
	if appCfg.BackendRateLimit < 0 {
		problems = append(problems, errors.New("backend_rate_limit cannot be negative"))
	}
	if len(appCfg.SessionKey) < minSessionKeyLen {
		problems = append(problems, fmt.Errorf("session_key must be at least %d bytes", minSessionKeyLen))
	}
	if appCfg.SubmitRateLimit < 0 {
		problems = append(problems, errors.New("submit_rate_limit cannot be negative"))
	}
	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		problems = append(problems, fmt.Errorf("trusted_proxies: %w", err))
	}
	if appCfg.PageSize < 1 {
		problems = append(problems, fmt.Errorf("page_size must be at least 1, got %d", appCfg.PageSize))
	}

	return errors.Join(problems...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return 0, fmt.Errorf("backend_rate_limit: %q is not a number", s)
	}
	return v, nil
}
