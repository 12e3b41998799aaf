package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/lpernett/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Telerehab-Labs/telerehab-go-sdk/handlers"
	"github.com/Telerehab-Labs/telerehab-go-sdk/utils"
)

// Load environment variables from .env file
func init() {
	err := godotenv.Load()
	if err != nil {
		zap.L().Warn("Error loading .env file")
	}
}

func main() {
	// Set up logging
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	zap.L().Info("Server Version: Telerehab Coach V1")

	// Set up Redis connection; the server still runs without it, sessions
	// just stop being observable from the dashboard.
	var store *utils.SessionStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:        os.Getenv("REDIS_HOST"),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          0,
		DialTimeout: 20 * time.Second, // initial connection timeout
	})

	redisCtx, cancelRedis := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelRedis()

	if _, err := redisClient.Ping(redisCtx).Result(); err != nil {
		zap.L().Warn("Failed to connect to Redis, session persistence disabled", zap.Error(err))
	} else {
		zap.L().Info("Successfully connected to Redis")
		store = utils.NewSessionStore(redisClient)
	}

	// Pose estimator is optional: without it, clients must send keypoints
	// instead of raw frames.
	estimator, err := utils.NewEstimatorClient()
	if err != nil {
		zap.L().Warn("Pose estimator not configured, frame messages disabled", zap.Error(err))
	}

	catalog := utils.CatalogFromEnv()

	// Define HTTP routes
	router := mux.NewRouter()
	router.HandleFunc("/coach", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleCoachSession(w, r, store, estimator, catalog)
	})
	router.Handle("/exercises", handlers.NewExercisesHandler(catalog)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Set up signal handling
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	port := ":" + os.Getenv("PORT")
	if port == ":" {
		port = ":8080"
	}
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	serverExit := make(chan struct{})

	// Start HTTP server in a goroutine
	go func() {
		zap.L().Info("Starting server", zap.String("addr", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Error("Server exited", zap.Error(err))
		}
		close(serverExit)
	}()

	// On termination, close all connections and shut down the server
	select {
	case <-stop:
		zap.L().Info("Shutting down server...")
	case <-serverExit:
		zap.L().Info("Server exited unexpectedly...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}

	zap.L().Info("Server shut down gracefully")
}
