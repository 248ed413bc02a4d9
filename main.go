package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"inotebook/config"
	"inotebook/handler"
	"inotebook/middleware"
	"inotebook/repository"
	"inotebook/services"
	"inotebook/usecase"
	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type routerDeps struct {
	Logger        *zap.Logger
	NotesHandler  *handler.NotesHandler
	HealthHandler *handler.HealthHandler
	Auth          gin.HandlerFunc
	MaxBodyBytes  int64
	CORSOrigin    string
}

func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RecoveryWithLogger(deps.Logger))
	router.Use(middleware.AccessLog(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(deps.CORSOrigin))

	// Public routes (no authentication required)
	router.GET("/health", deps.HealthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	notes := router.Group("/api/notes")
	notes.Use(middleware.RequestSizeLimiter(deps.MaxBodyBytes))
	notes.Use(middleware.NoStoreMiddleware())
	notes.Use(deps.Auth)
	{
		notes.GET("/fetchallnotes", deps.NotesHandler.FetchAllNotes)
		notes.POST("/addnote", deps.NotesHandler.AddNote)
		notes.PUT("/updatenote/:id", deps.NotesHandler.UpdateNote)
		notes.DELETE("/deletenote/:id", deps.NotesHandler.DeleteNote)
	}

	return router
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inotebook: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Production)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	validator, err := utils.InitValidator()
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := utils.NewMongoClient(ctx, cfg.Database.ClientOptions())
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	logger.Info("connected to mongodb", zap.String("database", cfg.Database.DatabaseName))

	notesRepo := repository.GetNotesRepo(mongoClient, cfg.Database.DatabaseName, cfg.Database.NotesCollection)
	indexes, err := notesRepo.SetupIndexes(ctx)
	if err != nil {
		return err
	}
	logger.Info("notes indexes ready", zap.Strings("indexes", indexes))

	healthChecks := map[string]handler.Pinger{
		"mongodb": utils.MongoPinger{Client: mongoClient},
	}

	// A nil interface disables revocation; a typed nil pointer would not.
	var blacklist middleware.TokenBlacklist
	if cfg.Redis.URL != "" {
		redisBlacklist, err := services.NewTokenBlacklist(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
		healthChecks["redis"] = redisBlacklist
	} else {
		logger.Warn("REDIS_URL not set, token revocation is not checked")
	}

	tokens := services.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpirationTime)*time.Second)
	notesService := usecase.NewNotesService(notesRepo, logger, middleware.TrackNoteOperation)

	router := setupRouter(routerDeps{
		Logger:        logger,
		NotesHandler:  handler.NewNotesHandler(notesService, validator, logger),
		HealthHandler: handler.NewHealthHandler(healthChecks, logger),
		Auth:          middleware.AuthMiddleware(tokens, blacklist, logger),
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		CORSOrigin:    cfg.Server.CORSAllowOrigin,
	})

	return serve(router, ":"+cfg.Server.Port, cfg.Server.ShutdownTimeout, logger)
}
