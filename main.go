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

	"github.com/joho/godotenv"
	"github.com/ong-espoir/api-server-go/notify"
	"github.com/ong-espoir/api-server-go/storage"
	"github.com/ong-espoir/api-server-go/translate"
	v1 "github.com/ong-espoir/api-server-go/v1"
	v1handlers "github.com/ong-espoir/api-server-go/v1/handlers"
	v1middleware "github.com/ong-espoir/api-server-go/v1/middleware"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting ONG Espoir API server initialization")

	dbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewDiskStoreFromEnv()
	if err != nil {
		slog.Error("Failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	v1Handler := v1handlers.NewV1Handler(gormDB, v1handlers.V1HandlerConfig{
		Translator:   translate.NewDeepLClientFromEnv(),
		Store:        store,
		Notifier:     notify.NewNotifierFromEnv(),
		AdminEmail:   os.Getenv("MAIL_FROM_ADDRESS"),
		AssetBaseURL: getEnvOrDefault("ASSET_BASE_URL", "http://localhost:8080"),
		JWTSecret:    jwtSecret,
	})

	mux := http.NewServeMux()
	v1Handler.SetupV1Routes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"ong-espoir-api","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Serve uploaded blobs
	mux.Handle("/storage/", http.StripPrefix("/storage/", http.FileServer(http.Dir(store.BaseDir()))))

	// Auth first so CORS headers also reach rejected requests
	jwtMiddleware := v1middleware.NewJWTAuthMiddleware(v1Handler.AuthService())
	handler := v1middleware.NewCORSMiddleware()(jwtMiddleware.AuthenticateJWT(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	addr := ":" + port
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("ONG Espoir API server starting", "port", port, "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start API server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("API server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
