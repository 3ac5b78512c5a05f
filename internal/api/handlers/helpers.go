package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/utils"
)

// respond writes data in the success envelope, or bare on legacy routes
func respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if middleware.IsLegacy(r) {
		utils.WriteJSON(w, status, data)
		return
	}
	utils.WriteSuccess(w, status, data)
}

// respondError writes err as an AppError. Legacy routes get {"error": msg}.
func respondError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal(fallbackMsg, err)
	}
	if middleware.IsLegacy(r) {
		utils.WriteJSON(w, appErr.StatusCode, map[string]interface{}{
			"error": appErr.Message,
		})
		return
	}
	utils.WriteError(w, appErr)
}

// decodeJSON decodes the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequest("Invalid request body")
	}
	return nil
}

// parseID reads a positive integer URL parameter
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid " + param)
	}
	return id, nil
}
