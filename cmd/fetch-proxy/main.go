package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/WillardWam/Fetch-Resilient/pkg/cache"
	"github.com/WillardWam/Fetch-Resilient/pkg/client"
	"github.com/WillardWam/Fetch-Resilient/pkg/logging"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "8080")
	cachePath := getEnv("CACHE_PATH", client.DefaultCachePath)
	redisURL := getEnv("REDIS_URL", "") // set to use Redis instead of SQLite
	cacheTTL := getEnvDuration("CACHE_TTL", 15*time.Minute)
	maxRetries := getEnvInt("MAX_RETRIES", 3)

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") != "",
		Output: os.Stderr,
	})

	store := cache.New(func() (cache.Store, error) {
		if redisURL != "" {
			return cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: redisURL})), nil
		}
		return cache.NewSQLiteStore(cachePath)
	})

	fetcher := client.New(
		client.WithCacheStore(store),
		client.WithDefaults(
			client.WithCache(true),
			client.WithCacheTTL(cacheTTL),
			client.WithMaxRetries(maxRetries),
		),
	)
	defer fetcher.Close()

	http.HandleFunc("/health", healthHandler)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/fetch", fetchHandler(fetcher))

	addr := ":" + port
	log.Printf("Starting fetch proxy on %s", addr)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// fetchHandler proxies GET /fetch?url=<address> through the resilient client.
func fetchHandler(fetcher *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("url")
		if address == "" {
			http.Error(w, "missing url parameter", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		value, err := fetcher.Fetch(ctx, address, client.RequestOptions{}, client.WithResponseType(client.ResponseTypeText))
		if err != nil {
			http.Error(w, fmt.Sprintf("fetch failed: %v", err), http.StatusBadGateway)
			return
		}

		text, _ := value.(string)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(text)); err != nil {
			log.Printf("Failed to write response: %v", err)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
