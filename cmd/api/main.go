package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/rsvp/internal/config"
	"github.com/joshua-takyi/rsvp/internal/connect"
	"github.com/joshua-takyi/rsvp/internal/container"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/routes"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting RSVP API server", "environment", cfg.Environment, "store", cfg.StoreDriver)

	var (
		supaClient  *supabase.Client
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreSupabase:
		supaClient, err = connect.InitSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			logger.Error("Failed to connect to Supabase", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to Supabase successfully")
	case config.StoreMongo:
		mongoClient, err = connect.MongoDBConnect(cfg.MongoDBURI, cfg.MongoDBPassword)
		if err != nil {
			logger.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)
	default:
		logger.Warn("Using in-memory store, data is lost on restart")
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	var organizerKeyfunc jwt.Keyfunc
	if cfg.OrganizerJWKSURL != "" {
		organizerKeyfunc, err = helpers.NewJWKSKeyfunc(appCtx, cfg.OrganizerJWKSURL, logger)
		if err != nil {
			logger.Error("Failed to load organizer JWKS", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("ORGANIZER_JWKS_URL is not set, organizer routes are open")
	}

	appContainer, err := container.NewContainer(logger, cfg, supaClient, mongoClient, organizerKeyfunc)
	if err != nil {
		logger.Error("Failed to build application container", "error", err)
		os.Exit(1)
	}

	if ix, ok := appContainer.Store.(interface {
		EnsureIndexes(ctx context.Context) error
	}); ok {
		ixCtx, cancel := context.WithTimeout(appCtx, 30*time.Second)
		if err := ix.EnsureIndexes(ixCtx); err != nil {
			logger.Warn("Failed to ensure indexes", "error", err)
		}
		cancel()
	}

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := appContainer.SubmissionService.Wait(ctx); err != nil {
		logger.Warn("Confirmation emails still pending at shutdown", "error", err)
	}
	stopApp()

	connect.Disconnect()
	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
