package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/avendel/catalog-api/internal/config"
	"github.com/avendel/catalog-api/internal/handlers"
	"github.com/avendel/catalog-api/internal/middleware"
	"github.com/avendel/catalog-api/internal/repository"
	"github.com/avendel/catalog-api/internal/server"
	"github.com/avendel/catalog-api/internal/service"
	"github.com/avendel/catalog-api/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting catalog api server",
		"listen_addr", cfg.Server.ListenAddr,
		"database", cfg.Mongo.Database,
		"log_level", cfg.LogLevel,
	)

	// Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Error("mongodb is unreachable", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("failed to disconnect from mongodb", "error", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	productRepo := repository.NewMongoProductRepository(db)
	seeded, err := productRepo.Warm(connectCtx)
	if err != nil {
		log.Error("failed to warm product ID cache", "error", err)
		os.Exit(1)
	}
	log.Info("product ID cache warmed", "products", seeded)

	// Initialize services
	productService := service.NewProductService(productRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(storePinger{client}, log)
	productHandler := handlers.NewProductHandler(productService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Read endpoints are public
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productId}", productHandler.GetProduct)

		// Mutating endpoints require an admin token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Auth))
			r.Post("/products", productHandler.CreateProduct)
			r.Put("/products/{productId}", productHandler.UpdateProduct)
			r.Delete("/products/{productId}", productHandler.DeleteProduct)
		})
	})

	// Bind the listener before reporting the server as started, so a port
	// already held by another process fails loudly here
	srv := server.New(cfg.Server, r)
	if err := srv.Listen(); err != nil {
		log.Error("failed to bind listen address; stop the conflicting process or change LISTEN_ADDR", "error", err)
		os.Exit(1)
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", srv.Addr())
		if err := srv.Serve(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancelShutdown := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancelShutdown()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// storePinger adapts the mongo client to the health handler's Pinger
type storePinger struct {
	client *mongo.Client
}

func (p storePinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}
