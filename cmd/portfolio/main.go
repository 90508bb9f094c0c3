// ABOUTME: Main entry point for the portfolio server
// ABOUTME: Wires configuration, caches, aggregators, the refresh loop and the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mishurahman616/portfolio/api"
	"github.com/mishurahman616/portfolio/api/handlers"
	"github.com/mishurahman616/portfolio/api/middleware"
	"github.com/mishurahman616/portfolio/content"
	"github.com/mishurahman616/portfolio/core/contact"
	"github.com/mishurahman616/portfolio/core/interfaces"
	"github.com/mishurahman616/portfolio/core/quest"
	"github.com/mishurahman616/portfolio/core/stats"
	"github.com/mishurahman616/portfolio/core/workers"
	"github.com/mishurahman616/portfolio/infrastructure/cache/memory"
	"github.com/mishurahman616/portfolio/infrastructure/cache/redis"
	"github.com/mishurahman616/portfolio/infrastructure/cache/sqlite"
	"github.com/mishurahman616/portfolio/infrastructure/email/emailjs"
	stdhttp "github.com/mishurahman616/portfolio/infrastructure/http/standard"
	"github.com/mishurahman616/portfolio/infrastructure/logger/structured"
	"github.com/mishurahman616/portfolio/infrastructure/watch"
	"github.com/mishurahman616/portfolio/pkg/config"
	"github.com/mishurahman616/portfolio/pkg/featureflags"
	"github.com/mishurahman616/portfolio/web"
)

const flagPrefix = "PORTFOLIO_FEATURE_"

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	flags := featureflags.NewEnvManager(flagPrefix)
	ctx := context.Background()

	logger.Info("Starting portfolio server", map[string]interface{}{
		"port":             cfg.Server.Port,
		"cache_type":       cfg.Cache.Type,
		"refresh_interval": cfg.Server.RefreshInterval.String(),
		"flags":            flags.GetAllFlags(),
	})

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
		} else {
			defer redisCache.Close()
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path, cfg.Cache.SQLite.CleanupInterval)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
		} else {
			defer sqliteCache.Close()
			cache = sqliteCache
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
		}
	default:
		cache = memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
		logger.Info("Using memory cache", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second).
		WithTransport(&middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger})

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	dataFile := filepath.Join(cfg.Server.DataDir, handlers.ChallengeFile)

	questCfg := quest.Config{
		LeetCodeUser:    cfg.Profiles.LeetCodeUser,
		PublicURL:       cfg.Server.PublicURL,
		BasePath:        cfg.Server.BasePath,
		DataFile:        dataFile,
		CandidatePaths:  cfg.Quests.CandidatePaths,
		AttemptTimeout:  cfg.Quests.AttemptTimeout,
		ProxyTimeout:    cfg.Quests.ProxyTimeout,
		GraphQLEndpoint: cfg.Quests.GraphQLEndpoint,
		PrimaryProxy:    cfg.Quests.PrimaryProxy,
		FallbackProxy:   cfg.Quests.FallbackProxy,
		StateTTL:        cfg.Cache.TTL,
	}
	if !flags.IsEnabled(ctx, featureflags.BadgeSource) {
		questCfg.PrimaryProxy = ""
		questCfg.FallbackProxy = ""
	}
	questService := quest.NewQuestService(deps, questCfg)

	statsService := stats.NewStatsService(deps, stats.Config{
		LeetCodeUser:       cfg.Profiles.LeetCodeUser,
		CodeforcesUser:     cfg.Profiles.CodeforcesUser,
		LeetCodeEndpoint:   cfg.Profiles.LeetCodeEndpoint,
		CodeforcesEndpoint: cfg.Profiles.CodeforcesEndpoint,
		Proxy:              cfg.Profiles.StatsProxy,
		Timeout:            cfg.Profiles.Timeout,
		SnapshotTTL:        cfg.Cache.TTL,
	})

	var contactService handlers.ContactService
	if cfg.ContactConfigured() {
		relay := emailjs.NewRelay(httpClient, emailjs.Config{
			Endpoint:   cfg.Contact.Endpoint,
			ServiceID:  cfg.Contact.ServiceID,
			TemplateID: cfg.Contact.TemplateID,
			PublicKey:  cfg.Contact.PublicKey,
		})
		contactService = contact.NewContactService(deps, relay, cfg.Contact.SuccessDisplay)
	} else {
		logger.Warn("Email relay not configured, contact form disabled", nil)
	}

	profile, err := content.Load(filepath.Join(cfg.Server.DataDir, "profile.yaml"))
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}
	rendered, err := content.NewMarkdown("").RenderProfile(profile)
	if err != nil {
		log.Fatalf("Failed to render profile: %v", err)
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	refresher := workers.NewRefresher(logger, workers.RefresherConfig{
		Interval:   cfg.Server.RefreshInterval,
		JobTimeout: cfg.Server.JobTimeout,
	},
		workers.Job{Name: workers.JobQuests, Run: func(ctx context.Context) error {
			_, err := questService.Sync(ctx)
			return err
		}},
		workers.Job{Name: workers.JobStats, Run: func(ctx context.Context) error {
			_, err := statsService.Refresh(ctx)
			return err
		}},
	)

	apiConfig := api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Docs:           flags.IsEnabled(ctx, featureflags.APIDocs),
	}
	if flags.IsEnabled(ctx, featureflags.RateLimit) && cfg.Contact.RatePerMinute > 0 {
		apiConfig.Limiter = middleware.NewRateLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst)
		apiConfig.LimitedPaths = []string{"/contact", "/api/contact"}
	}
	humaAPI, router := api.NewAPI(apiConfig)

	contactHandler := handlers.NewContactHandler(contactService, flags)
	handlers.NewQuestHandler(questService, refresher).RegisterRoutes(humaAPI)
	handlers.NewStatsHandler(statsService).RegisterRoutes(humaAPI)
	contactHandler.RegisterRoutes(humaAPI)
	handlers.NewSiteHandler(profile).RegisterRoutes(humaAPI)

	pages := handlers.NewPageHandler(renderer, handlers.PageConfig{
		Content:  rendered,
		BasePath: cfg.Server.BasePath,
		DataDir:  cfg.Server.DataDir,
		Logger:   logger,
	}, questService, statsService, contactHandler, refresher)
	pages.Mount(router)

	if err := refresher.Start(); err != nil {
		log.Fatalf("Failed to start refresher: %v", err)
	}

	var watcher *watch.FileWatcher
	if flags.IsEnabled(ctx, featureflags.DataWatch) {
		watcher = watch.NewFileWatcher(dataFile, watch.DefaultDebounce, logger, func(ctx context.Context) error {
			return refresher.RefreshNow(ctx, workers.JobQuests)
		})
		if err := watcher.Start(); err != nil {
			logger.Warn("Challenge document watch unavailable", map[string]interface{}{
				"error": err.Error(),
			})
			watcher = nil
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	if watcher != nil {
		_ = watcher.Stop()
	}
	_ = refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
