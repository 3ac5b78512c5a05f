package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/festhub/eventhub/internal/pkg/logger"
)

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := RateLimit(ctx, 1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("second client got %d", rr.Code)
	}
}

func TestRecommendRateLimit(t *testing.T) {
	handler := RecommendRateLimit(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/ml/recommend", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/ml/recommend", nil))

	if first.Code != http.StatusOK {
		t.Errorf("first call got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second call got %d, want 429", second.Code)
	}
	if got := second.Body.String(); got == "" || got[0] != '{' {
		t.Errorf("expected a JSON error body, got %q", got)
	}
}

func TestRecoveryAndLegacy(t *testing.T) {
	var legacy bool
	handler := Legacy(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		legacy = IsLegacy(r)
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	Recovery(testLogger())(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !legacy {
		t.Error("request not marked legacy")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}
