package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	apphttp "bookshelf/internal/http"
	"bookshelf/internal/httpx"
	"bookshelf/internal/library"
	"bookshelf/internal/openlibrary"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	libraryFile := getEnv("LIBRARY_FILE", "library.json")
	openLibraryURL := getEnv("OPENLIBRARY_URL", "")
	userAgent := getEnv("OPENLIBRARY_USER_AGENT", "bookshelf/1.0")
	openLibraryRPS := getEnvInt("OPENLIBRARY_RPS", 1)
	apiRPS := getEnvInt("API_RPS", 10)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	metadata := openlibrary.NewClient(openLibraryURL, userAgent, openLibraryRPS,
		logger.With("component", "openlibrary"))

	lib, err := library.Open(libraryFile, metadata, logger.With("component", "library"))
	if err != nil {
		logger.Error("cannot open library", "file", libraryFile, "error", err)
		os.Exit(1)
	}

	mux := apphttp.NewMux(apphttp.NewBookHandler(lib))
	rateLimit := httpx.NewRateLimitMiddleware(float64(apiRPS), apiRPS*2)

	var root http.Handler = mux
	root = httpx.SecurityHeadersMiddleware(root)
	root = httpx.RequestSizeLimitMiddleware(1 << 20)(root)
	root = rateLimit.Middleware(root)
	root = httpx.AccessLogMiddleware(logger.With("component", "http"))(root)
	root = httpx.RecoveryMiddleware(logger.With("component", "http"))(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("starting server", "addr", serverAddress, "library_file", libraryFile)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer environment variable, using default", "key", key, "value", v)
		return def
	}
	return n
}
