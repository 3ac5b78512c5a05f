package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/festhub/eventhub/internal/api/handlers"
	"github.com/festhub/eventhub/internal/auth"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/validator"
	"github.com/festhub/eventhub/internal/services"
	"github.com/festhub/eventhub/internal/testutil"
)

type testServer struct {
	handler http.Handler
	issuer  *auth.Issuer
	runner  *testutil.MockRunner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Server: config.ServerConfig{
			FrontendURL:    "http://localhost:5173",
			MaxUploadBytes: 1 << 20,
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 2 * time.Hour,
			BCryptCost:         4,
		},
		Storage:     config.StorageConfig{Backend: "local", LocalDir: t.TempDir()},
		Recommender: config.RecommenderConfig{RateLimitPerMinute: 1000},
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry, cfg.Auth.RefreshTokenExpiry)

	events := testutil.NewMockEventRepository()
	eventService := services.NewEventService(events, testutil.NewMockImageStore(), log)
	eventService.Create(ctx, &event.Event{Title: "Jazz Night", OwnerID: 1, TicketPrice: 100}, nil)

	runner := &testutil.MockRunner{Output: []byte(`{"message":"No events can be organized within your budget of Rs 10.","budget":10,"events_selected":0}`)}

	h := &Handlers{
		Health: handlers.NewHealthHandler(testutil.NewTestDB(t), log),
		Auth: handlers.NewAuthHandler(
			services.NewUserService(testutil.NewMockUserRepository(), cfg.Auth.BCryptCost, log),
			issuer, cfg, log, val,
		),
		Event: handlers.NewEventHandler(eventService, cfg, log, val),
		Ticket: handlers.NewTicketHandler(
			services.NewTicketService(testutil.NewMockTicketRepository(), events, log),
			log, val,
		),
		Recommendation: handlers.NewRecommendationHandler(services.NewRecommendationService(runner, log), log),
	}

	return &testServer{
		handler: New(ctx, cfg, log, issuer, h),
		issuer:  issuer,
		runner:  runner,
	}
}

func (s *testServer) do(method, path, body string, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"test", http.MethodGet, "/test", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"v1 events", http.MethodGet, "/api/v1/events", "", http.StatusOK},
		{"v1 event", http.MethodGet, "/api/v1/events/1", "", http.StatusOK},
		{"v1 order summary", http.MethodGet, "/api/v1/events/1/order-summary", "", http.StatusOK},
		{"v1 like", http.MethodPost, "/api/v1/events/1/like", "", http.StatusOK},
		{"v1 update needs auth", http.MethodPut, "/api/v1/events/1", "", http.StatusUnauthorized},
		{"v1 delete needs auth", http.MethodDelete, "/api/v1/events/1", "", http.StatusUnauthorized},
		{"v1 tickets", http.MethodGet, "/api/v1/tickets", "", http.StatusOK},
		{"v1 profile needs session", http.MethodGet, "/api/v1/auth/profile", "", http.StatusUnauthorized},
		{"v1 recommendations", http.MethodPost, "/api/v1/recommendations", `{"budget":10}`, http.StatusOK},
		{"legacy events", http.MethodGet, "/events", "", http.StatusOK},
		{"legacy createEvent list", http.MethodGet, "/createEvent", "", http.StatusOK},
		{"legacy event", http.MethodGet, "/event/1", "", http.StatusOK},
		{"legacy like", http.MethodPost, "/event/1", "", http.StatusOK},
		{"legacy order summary", http.MethodGet, "/event/1/ordersummary", "", http.StatusOK},
		{"legacy payment summary", http.MethodGet, "/event/1/ordersummary/paymentsummary", "", http.StatusOK},
		{"legacy missing event", http.MethodGet, "/event/99", "", http.StatusNotFound},
		{"legacy tickets list", http.MethodGet, "/tickets/anything", "", http.StatusOK},
		{"legacy user tickets", http.MethodGet, "/tickets/user/1", "", http.StatusOK},
		{"legacy profile", http.MethodGet, "/profile", "", http.StatusOK},
		{"legacy logout", http.MethodPost, "/logout", "", http.StatusOK},
		{"legacy recommend", http.MethodPost, "/ml/recommend", `{"budget":10}`, http.StatusOK},
		{"legacy recommend bad budget", http.MethodPost, "/ml/recommend", `{"budget":"abc"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := srv.do(tt.method, tt.path, tt.body, "")
			if rr.Code != tt.expectedStatus {
				t.Errorf("%s %s: got %d want %d (%s)", tt.method, tt.path, rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestRouter_LegacyAndV1Shapes(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(http.MethodGet, "/event/1", "", "")
	var legacy map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&legacy); err != nil {
		t.Fatalf("failed to decode legacy response: %v", err)
	}
	if legacy["title"] != "Jazz Night" {
		t.Errorf("legacy response is not the bare event: %v", legacy)
	}

	rr = srv.do(http.MethodGet, "/api/v1/events/1", "", "")
	var v1 map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&v1); err != nil {
		t.Fatalf("failed to decode v1 response: %v", err)
	}
	if v1["success"] != true || v1["data"] == nil {
		t.Errorf("v1 response is not enveloped: %v", v1)
	}

	rr = srv.do(http.MethodGet, "/event/99", "", "")
	var notFound map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&notFound)
	if notFound["error"] != "Event not found" {
		t.Errorf("legacy error shape: %v", notFound)
	}
}

func TestRouter_OwnerCanDeleteWithBearerToken(t *testing.T) {
	srv := newTestServer(t)

	stranger, err := srv.issuer.Mint(auth.Identity{UserID: 2, Email: "b@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	owner, err := srv.issuer.Mint(auth.Identity{UserID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if rr := srv.do(http.MethodDelete, "/api/v1/events/1", "", stranger.AccessToken); rr.Code != http.StatusForbidden {
		t.Errorf("stranger delete: got %d want 403", rr.Code)
	}
	if rr := srv.do(http.MethodDelete, "/api/v1/events/1", "", owner.RefreshToken); rr.Code != http.StatusUnauthorized {
		t.Errorf("refresh token used as access token: got %d want 401", rr.Code)
	}
	if rr := srv.do(http.MethodDelete, "/api/v1/events/1", "", owner.AccessToken); rr.Code != http.StatusNoContent {
		t.Errorf("owner delete: got %d want 204", rr.Code)
	}
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	srv := newTestServer(t)
	rr := srv.do(http.MethodGet, "/health", "", "")

	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}
