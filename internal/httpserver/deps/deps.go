package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/georepo/internal/auth"
	"github.com/MrSnakeDoc/georepo/internal/index"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/session"
	"github.com/MrSnakeDoc/georepo/internal/viewmodel"
)

// VisitorCounter counts new sessions.
type VisitorCounter interface {
	IncrementVisitors(ctx context.Context) (int64, error)
	Visitors(ctx context.Context) (int64, error)
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	AllowedHosts   []string            // Host headers allowed to call /reload
	AllowedCIDRS   []string            // IPs allowed to call /reload and the ops endpoints
	TrustProxy     bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins    []string            // Origins allowed to call the JSON API (empty = same-origin only)
	LoginRateLimit int                 // Login attempts per minute per client IP
	WorkbookSource string              // Where the workbook is loaded from
	RedisClient    *redis.Client       // Redis client connection (nil when Redis is disabled)
	MemoryIndex    *index.MemoryIndex  // Catalogs currently served
	ViewModel      *viewmodel.Model    // Renders catalog pages
	Sessions       *session.Registry   // Live sessions and their ledgers
	Auth           *auth.Authenticator // Credential gate (nil when auth is disabled)
	Visitors       VisitorCounter      // Visitor counter
	ReloadTrigger  chan struct{}       // Channel to trigger a manual workbook reload
	SecureCookies  bool                // Set the Secure flag on the session cookie
}

// AuthDisabled reports whether visitors get anonymous sessions.
func (d Deps) AuthDisabled() bool { return d.Auth == nil }
