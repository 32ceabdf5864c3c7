package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/georepo/internal/auth"
	"github.com/MrSnakeDoc/georepo/internal/config"
	"github.com/MrSnakeDoc/georepo/internal/favorites"
	"github.com/MrSnakeDoc/georepo/internal/httpserver"
	"github.com/MrSnakeDoc/georepo/internal/httpserver/deps"
	"github.com/MrSnakeDoc/georepo/internal/index"
	"github.com/MrSnakeDoc/georepo/internal/logger"
	"github.com/MrSnakeDoc/georepo/internal/redis"
	"github.com/MrSnakeDoc/georepo/internal/scheduler"
	"github.com/MrSnakeDoc/georepo/internal/session"
	"github.com/MrSnakeDoc/georepo/internal/sources/workbook"
	filestore "github.com/MrSnakeDoc/georepo/internal/store/file"
	redisstore "github.com/MrSnakeDoc/georepo/internal/store/redis"
	"github.com/MrSnakeDoc/georepo/internal/version"
	"github.com/MrSnakeDoc/georepo/internal/viewmodel"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.WorkbookReloader
	sweeper     *scheduler.SessionSweeper
	writer      *favorites.Writer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional. When configured it must be reachable at startup.
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
		snapshots   scheduler.SnapshotStore
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)
		snapshots = store
	} else {
		loggerClient.Info("redis not configured, snapshot fallback disabled")
	}

	memIndex := index.NewMemoryIndex()

	// Serve the last known catalogs while the workbook is fetched.
	if snapshots != nil {
		syncer := scheduler.NewRedisSyncer(snapshots, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from workbook",
				logger.Error(err))
		}
	}

	// Favorites persistence goes through a single writer.
	var (
		writer *favorites.Writer
		ledger session.LedgerStore
	)
	switch cfg.FavoritesBackend {
	case config.BackendRedis:
		writer = favorites.NewWriter(store, loggerClient)
	case config.BackendFile:
		writer = favorites.NewWriter(filestore.NewLedgerStore(cfg.FavoritesFile), loggerClient)
	}
	if writer != nil {
		ledger = writer
	}
	loggerClient.Info("favorites persistence configured",
		logger.String("backend", cfg.FavoritesBackend))

	var visitors deps.VisitorCounter = filestore.NewVisitorCounter(cfg.VisitorFile)
	if store != nil {
		visitors = store
	}

	var authenticator *auth.Authenticator
	if cfg.AuthDisabled {
		loggerClient.Warn("login gate disabled, visitors get anonymous sessions")
	} else {
		authCfg, err := auth.LoadConfig(cfg.AuthFile)
		if err != nil {
			loggerClient.Errorf("Failed to load credentials: %v", err)
			os.Exit(1)
		}
		authenticator = auth.New(authCfg)
		loggerClient.Info("login gate enabled",
			logger.Int("users", len(authCfg.Credentials.Usernames)))
	}

	sessions := session.NewRegistry(ledger)

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewWorkbookReloader(
		scheduler.FromLoader(workbook.NewLoader(cfg.WorkbookSource, cfg.WorkbookTimeout)),
		snapshots,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	sweeper := scheduler.NewSessionSweeper(
		sessions,
		loggerClient,
		cfg.SessionSweepInterval,
		cfg.SessionTTL,
	)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
		WorkbookSource: cfg.WorkbookSource,
		RedisClient:    redisClient,
		MemoryIndex:    memIndex,
		ViewModel:      viewmodel.New(memIndex, loggerClient),
		Sessions:       sessions,
		Auth:           authenticator,
		Visitors:       visitors,
		ReloadTrigger:  reloadTrigger,
		SecureCookies:  cfg.SecureCookies,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		sweeper:     sweeper,
		writer:      writer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting GeoRepo v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("GeoRepo %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workbook reloader: %w", err)
	}
	a.logger.Info("workbook reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	a.sweeper.Start(ctx)
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SessionSweepInterval),
		logger.Duration("ttl", a.cfg.SessionTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Pending favorites saves drain before Redis goes away.
	if a.writer != nil {
		a.writer.Close()
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ GeoRepo stopped cleanly")
	return nil
}
