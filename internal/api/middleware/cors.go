package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS returns a CORS middleware with the given allowed origins
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		// Session cookies are sent cross-origin by the browser client
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// FrontendCORS allows the comma separated frontend origins, plus the usual
// dev server ports when running against localhost.
func FrontendCORS(frontendURLs string) func(http.Handler) http.Handler {
	var allowedOrigins []string
	local := false
	for _, origin := range strings.Split(frontendURLs, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		allowedOrigins = append(allowedOrigins, origin)
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			local = true
		}
	}

	if local {
		allowedOrigins = append(allowedOrigins,
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
		)
	}

	return CORS(allowedOrigins)
}
