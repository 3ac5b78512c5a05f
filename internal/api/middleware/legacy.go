package middleware

import (
	"context"
	"net/http"
)

const legacyKey ContextKey = "legacy"

// Legacy marks requests served on the unversioned routes. Handlers answer
// them with bare documents instead of the success envelope.
func Legacy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), legacyKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsLegacy reports whether the request came in on a legacy route
func IsLegacy(r *http.Request) bool {
	legacy, _ := r.Context().Value(legacyKey).(bool)
	return legacy
}
