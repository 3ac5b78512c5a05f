package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/festhub/eventhub/internal/api/handlers"
	"github.com/festhub/eventhub/internal/api/router"
	"github.com/festhub/eventhub/internal/auth"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/picker"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/validator"
	"github.com/festhub/eventhub/internal/recommender"
	"github.com/festhub/eventhub/internal/repository/postgres"
	"github.com/festhub/eventhub/internal/services"
	"github.com/festhub/eventhub/internal/storage"
	"github.com/festhub/eventhub/internal/testutil"
	"github.com/festhub/eventhub/internal/worker"
)

// TestHelperProcess stands in for the decision procedure. It reads
// catalog.csv from its working directory like the real one does.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	var req recommendation.Request
	if err := json.Unmarshal([]byte(os.Args[len(os.Args)-1]), &req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	catalog, err := picker.LoadCatalog("catalog.csv")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sel, empty, err := picker.New(catalog, nil).Pick(context.Background(), &req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var out interface{} = empty
	if sel != nil {
		out = sel
	}
	_ = json.NewEncoder(os.Stdout).Encode(out)
	os.Exit(0)
}

type testEnv struct {
	server   *httptest.Server
	exporter *worker.CatalogExporter
	events   event.Repository
}

// setupTestServer wires the real stack over an in-memory SQLite database
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	workDir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{
			FrontendURL:    "http://localhost:5173",
			Environment:    "test",
			MaxUploadBytes: 1 << 20,
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key-for-testing-only",
			BCryptCost:         4, // Low cost for fast tests
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Storage: config.StorageConfig{Backend: "local", LocalDir: t.TempDir()},
		Recommender: config.RecommenderConfig{
			Timeout:            30 * time.Second,
			RateLimitPerMinute: 1000,
		},
		Catalog: config.CatalogConfig{
			Schedule: "@every 1h",
			Path:     filepath.Join(workDir, "catalog.csv"),
		},
	}

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	sqlDB := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(sqlDB) })
	db := postgres.Wrap(sqlDB, "sqlite")

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	images, err := storage.NewLocalStore(cfg.Storage.LocalDir, log)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	runner := recommender.NewInvoker(recommender.Config{
		Command: os.Args[0],
		Args:    []string{"-test.run=^TestHelperProcess$", "--"},
		Dir:     workDir,
		Env:     []string{"GO_WANT_HELPER_PROCESS=1"},
		Timeout: cfg.Recommender.Timeout,
	}, log)

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry, cfg.Auth.RefreshTokenExpiry)
	h := &router.Handlers{
		Health:         handlers.NewHealthHandler(sqlDB, log),
		Auth:           handlers.NewAuthHandler(services.NewUserService(userRepo, cfg.Auth.BCryptCost, log), issuer, cfg, log, val),
		Event:          handlers.NewEventHandler(services.NewEventService(eventRepo, images, log), cfg, log, val),
		Ticket:         handlers.NewTicketHandler(services.NewTicketService(ticketRepo, eventRepo, log), log, val),
		Recommendation: handlers.NewRecommendationHandler(services.NewRecommendationService(runner, log), log),
	}

	ts := httptest.NewServer(router.New(ctx, cfg, log, issuer, h))
	t.Cleanup(ts.Close)

	return &testEnv{
		server:   ts,
		exporter: worker.NewCatalogExporter(eventRepo, cfg.Catalog, log),
		events:   eventRepo,
	}
}

// do sends a request and returns the status and body
func (e *testEnv) do(t *testing.T, method, path, token, contentType string, body io.Reader) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(b)
	}
	return e.do(t, method, path, token, "application/json", body)
}

func (e *testEnv) postForm(t *testing.T, path, token string, form map[string]string) (int, []byte) {
	t.Helper()
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	return e.do(t, http.MethodPost, path, token, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

// envelope decodes a v1 success body into dst
func envelope(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, body)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", body)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, body)
	}
}
