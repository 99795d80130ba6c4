package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WillardWam/Fetch-Resilient/pkg/cache"
	"github.com/WillardWam/Fetch-Resilient/pkg/client"
)

func newTestFetcher(t *testing.T) *client.Client {
	t.Helper()

	store := cache.New(func() (cache.Store, error) {
		return cache.NewSQLiteStore(":memory:")
	})

	fetcher := client.New(
		client.WithCacheStore(store),
		client.WithDefaults(
			client.WithCache(true),
			client.WithCacheTTL(time.Minute),
		),
	)
	t.Cleanup(func() { fetcher.Close() })
	return fetcher
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(w.Body)
	if string(body) != "OK" {
		t.Errorf("health body = %q, want OK", body)
	}
}

func TestFetchHandler_MissingURL(t *testing.T) {
	handler := fetchHandler(newTestFetcher(t))

	req := httptest.NewRequest("GET", "/fetch", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFetchHandler_ProxiesBody(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello from origin"))
	}))
	defer origin.Close()

	handler := fetchHandler(newTestFetcher(t))

	req := httptest.NewRequest("GET", "/fetch?url="+origin.URL, nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), "hello from origin") {
		t.Errorf("body = %q, want origin body", body)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FETCHPROXY_TEST_STR", "value")
	if got := getEnv("FETCHPROXY_TEST_STR", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want value", got)
	}
	if got := getEnv("FETCHPROXY_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q", got)
	}

	t.Setenv("FETCHPROXY_TEST_INT", "7")
	if got := getEnvInt("FETCHPROXY_TEST_INT", 3); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
	if got := getEnvInt("FETCHPROXY_TEST_BADINT", 3); got != 3 {
		t.Errorf("getEnvInt fallback = %d, want 3", got)
	}

	t.Setenv("FETCHPROXY_TEST_DUR", "90s")
	if got := getEnvDuration("FETCHPROXY_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("getEnvDuration = %v, want 90s", got)
	}
}
