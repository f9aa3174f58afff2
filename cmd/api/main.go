package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-showcase/data"
	"product-showcase/internal/config"
	"product-showcase/internal/database"
	"product-showcase/internal/logger"
	"product-showcase/internal/repository"
	"product-showcase/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// openProductStore builds the configured product store. The postgres store is
// migrated and seeded from the snapshot before use.
func openProductStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.ProductRepository, database.Service, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverJSON:
		repo, err := repository.LoadJSONProductRepository(cfg.Store.DataFile)
		return repo, nil, err

	case config.StoreDriverPostgres:
		raw := data.Products
		if cfg.Store.DataFile != "" {
			fileData, err := os.ReadFile(cfg.Store.DataFile)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read product snapshot: %w", err)
			}
			raw = fileData
		}

		products, err := repository.DecodeProducts(raw)
		if err != nil {
			return nil, nil, err
		}

		dbService, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Database health check", zap.Any("health", dbService.Health(ctx)))

		if err := database.RunMigrations(dbService.DB(), log); err != nil {
			dbService.Close()
			return nil, nil, err
		}
		if err := database.SeedProducts(ctx, dbService.DB(), products, log); err != nil {
			dbService.Close()
			return nil, nil, err
		}

		return repository.NewPostgresProductRepository(dbService.DB()), dbService, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting product showcase",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("catalog", cfg.Catalog.BaseURL),
	)

	ctx := context.Background()

	products, dbService, err := openProductStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open product store", zap.Error(err))
	}

	deps := server.Dependencies{Products: products, Database: dbService}

	if cfg.Redis.Enabled {
		redisClient, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		deps.Redis = redisClient
		log.Info("API rate limiting enabled",
			zap.Int("requests", cfg.RateLimit.Requests),
			zap.Duration("window", cfg.RateLimit.Window),
		)
	}

	// Create server
	srv, err := server.NewServer(cfg, log, deps)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
