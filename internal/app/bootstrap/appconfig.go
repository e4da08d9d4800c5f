// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Backend kinds accepted by the "backend" key.
const (
	BackendMongo = "mongo"
	BackendREST  = "rest"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything the
// asset desk needs on top of that lives here.
type AppConfig struct {
	// Backend selection: "mongo" reads and writes MongoDB directly, "rest"
	// talks to the asset-management API at BackendURL.
	Backend string

	// REST backend
	BackendURL          string
	BackendTimeout      time.Duration
	BackendRetries      int
	BackendRetryBackoff time.Duration
	BackendRateLimit    float64 // requests per second; 0 = unlimited
	BackendRateBurst    int
	BackendClientID     string // client-credentials auth; blank disables it
	BackendClientSecret string
	BackendTokenURL     string
	BackendScopes       []string

	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64

	// UI state cookie
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name (default: assetdesk-ui)
	SessionDomain string // Cookie domain (blank means current host)

	// Seed empty collections with demo data (mongo backend only)
	SeedDemoData bool

	// How long the workflow success screen shows before redirecting
	RedirectDelay time.Duration

	// Rows per page on list screens
	PageSize int

	// How often the inventory gauges on /metrics are refreshed; 0 disables it
	InventoryRefresh time.Duration

	// Workflow submissions allowed per client per minute; 0 disables the limit
	SubmitRateLimit int

	// Reverse proxies (addresses or CIDRs) whose X-Forwarded-For is believed
	TrustedProxies []string
}
