package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/api"
	"github.com/bannerforge/bannerforge-backend/internal/cache"
	"github.com/bannerforge/bannerforge-backend/internal/config"
	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/identity"
	"github.com/bannerforge/bannerforge-backend/internal/llm"
	"github.com/bannerforge/bannerforge-backend/internal/logger"
	"github.com/bannerforge/bannerforge-backend/internal/middleware"
)

const reaperInterval = time.Minute

func main() {
	// --- 1. Logger and configuration ---
	zapLogger, err := logger.New("info", false)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	if zapLogger, err = logger.New(appConfig.LogLevel, appConfig.IsRelease()); err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to configure Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded successfully.",
		zap.String("projectId", appConfig.FirebaseProjectID),
		zap.String("appId", appConfig.AppID),
		zap.Bool("emulator", appConfig.UseFirebaseEmulator))

	// --- 2. Firebase Admin SDK (Firestore and Auth) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	// --- 3. Repositories ---
	layout := db.Layout{AppID: appConfig.AppID}
	bannerRepo := db.NewFirestoreBannerRepository(clients.Firestore, layout, zapLogger)
	profileRepo := db.NewFirestoreProfileRepository(clients.Firestore, layout, zapLogger)

	var sharedCache cache.Cache = cache.NewMemoryCache(appConfig.SharedContentCacheSize, appConfig.SharedContentCacheTTL)
	if appConfig.RedisURL != "" {
		rdb, err := cache.NewRedisClient(initCtx, appConfig.RedisURL)
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis", zap.Error(err))
		}
		redisCache := cache.NewRedisCache(rdb)
		defer redisCache.Close()
		sharedCache = redisCache
		zapLogger.Info("Shared content cache backed by Redis.")
	} else {
		zapLogger.Info("REDIS_URL not set, shared content cache kept in memory.")
	}
	sharedRepo := db.NewCachedSharedContentRepository(
		db.NewFirestoreSharedContentRepository(clients.Firestore, layout, zapLogger),
		sharedCache, appConfig.SharedContentCacheTTL, zapLogger)

	// --- 4. Identity and generation ---
	backendCfg := identity.FirebaseBackendConfig{APIKey: appConfig.FirebaseAPIKey}
	if appConfig.UseFirebaseEmulator {
		backendCfg.EmulatorHost = appConfig.FirebaseAuthEmulatorHost
	}
	authBackend, err := identity.NewFirebaseBackend(initCtx, backendCfg, clients.Auth, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize identity backend", zap.Error(err))
	}

	gemini, err := llm.NewVertexGemini(initCtx, appConfig.VertexProjectID, appConfig.VertexLocation, appConfig.GeminiModel)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Vertex AI client", zap.Error(err))
	}
	defer gemini.Close()
	generator := llm.NewContentGenerator(gemini, zapLogger)

	// --- 5. Services ---
	registry := core.NewWorkspaceRegistry(core.WorkspaceDeps{
		NewAuthService: func() core.AuthService { return identity.NewClient(authBackend, zapLogger) },
		Profiles:       profileRepo,
		Banners:        bannerRepo,
		Shared:         sharedRepo,
		Generator:      generator,
		Logger:         zapLogger,
	}, appConfig.WorkspaceIdleTimeout)
	persistence := core.NewPersistence(bannerRepo, sharedRepo, zapLogger)
	profileService := core.NewProfileService(profileRepo, zapLogger)

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go registry.RunReaper(reaperCtx, reaperInterval)
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Gin engine, middleware and routes ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if corsMW := middleware.CORSMiddleware(appConfig.ClientURL, zapLogger); corsMW != nil {
		router.Use(corsMW)
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	}

	api.SetupRoutes(
		router,
		zapLogger,
		middleware.NewAuthMiddleware(authBackend, zapLogger),
		api.NewWorkspaceHandler(registry, zapLogger),
		api.NewMeHandler(persistence, profileService, appConfig.PublicBaseURL, zapLogger),
		api.NewSharedHandler(persistence, zapLogger),
	)

	// --- 7. HTTP server and graceful shutdown ---
	// Banner streams stay open until their request context ends; cancelling the base context
	// on shutdown lets Shutdown drain them.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpServer := &http.Server{
		Addr:              appConfig.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	httpServer.RegisterOnShutdown(cancelBase)

	go func() {
		zapLogger.Info("Starting HTTP server...", zap.String("address", httpServer.Addr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()

	stopReaper()
	registry.CloseAll()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
