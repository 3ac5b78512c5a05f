package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: time.Hour,
			BCryptCost:         4,
		},
	}
}

// withURLParams attaches chi URL parameters to req
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

// asLegacy runs req through the legacy marker
func asLegacy(req *http.Request) *http.Request {
	var marked *http.Request
	middleware.Legacy(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		marked = r
	})).ServeHTTP(nil, req)
	return marked
}
