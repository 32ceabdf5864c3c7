package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Favorites persistence backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	WorkbookSource  string        // local .xlsx path or http(s) URL
	WorkbookTimeout time.Duration // bound on one workbook download (default: 30s)
	ReloadInterval  time.Duration // interval to reload the workbook (default: 1h)

	AuthFile      string // path to the credentials YAML
	AuthDisabled  bool   // true => every visitor gets an anonymous session
	SecureCookies bool   // true => session cookie carries the Secure flag (HTTPS only)

	SessionTTL           time.Duration // idle time before a session is dropped (default: 24h)
	SessionSweepInterval time.Duration // interval between idle session sweeps (default: 15m)

	FavoritesBackend string // "memory" | "file" | "redis"
	FavoritesFile    string // JSON file for the file backend
	VisitorFile      string // JSON counter file when Redis is disabled

	// Redis (optional, enabled when RedisAddr is set)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts   []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS   []string // optional, restrict /reload and ops endpoints to specific IPs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins    []string // optional, origins allowed to call the JSON API
	LoginRateLimit int      // login attempts per minute per client IP
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() *Config {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("GEOREPO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("GEOREPO_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GEOREPO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GEOREPO_PRETTY_LOG", true),

		// Workbook
		WorkbookSource:  requireEnv("GEOREPO_WORKBOOK"),
		WorkbookTimeout: mustDuration("GEOREPO_WORKBOOK_TIMEOUT", 30*time.Second),
		ReloadInterval:  mustDuration("GEOREPO_RELOAD_INTERVAL", time.Hour),

		// Login gate
		AuthFile:      getenv("GEOREPO_AUTH_FILE", "config.yaml"),
		AuthDisabled:  mustBool("GEOREPO_AUTH_DISABLED", false),
		SecureCookies: mustBool("GEOREPO_SECURE_COOKIES", false),

		// Sessions
		SessionTTL:           mustDuration("GEOREPO_SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: mustDuration("GEOREPO_SESSION_SWEEP_INTERVAL", 15*time.Minute),

		// Persistence
		FavoritesBackend: strings.ToLower(getenv("GEOREPO_FAVORITES_BACKEND", BackendFile)),
		FavoritesFile:    getenv("GEOREPO_FAVORITES_FILE", "data/favorites.json"),
		VisitorFile:      getenv("GEOREPO_VISITOR_FILE", "data/visitors.json"),

		// Redis settings
		RedisAddr:             getenv("GEOREPO_REDIS_ADDR", ""),
		RedisUser:             getenv("GEOREPO_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("GEOREPO_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("GEOREPO_REDIS_PASSWORD", ""),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("GEOREPO_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("GEOREPO_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("GEOREPO_TRUST_PROXY", false),
		CORSOrigins:    splitAndTrim(getenv("GEOREPO_CORS_ORIGINS", "")),
		LoginRateLimit: getenvInt("GEOREPO_LOGIN_RATE_LIMIT", 10),
	}

	if cfg.RedisEnabled() {
		cfg.RedisDB = requireEnvInt("GEOREPO_REDIS_DB")
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks combinations of settings that cannot work together.
func (c *Config) Validate() error {
	switch c.FavoritesBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if !c.RedisEnabled() {
			return fmt.Errorf("GEOREPO_FAVORITES_BACKEND=redis requires GEOREPO_REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown GEOREPO_FAVORITES_BACKEND %q", c.FavoritesBackend)
	}

	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("GEOREPO_REDIS_PASSWORD is required when GEOREPO_REDIS_PASSWORD_REQUIRED=true")
	}

	if c.ReloadInterval <= 0 || c.SessionSweepInterval <= 0 {
		return fmt.Errorf("reload and sweep intervals must be > 0")
	}

	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
