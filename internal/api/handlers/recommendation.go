package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/utils"
)

const maxRecommendationBody = 1 << 20

// RecommendationHandler serves the event recommendation endpoint
type RecommendationHandler struct {
	service recommendation.Service
	logger  *logger.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service recommendation.Service, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  log,
	}
}

// Recommend runs the decision procedure for a budget and forwards its
// output unchanged.
// @Summary Recommend events
// @Description Select events that fit a budget. The decision procedure's JSON document is returned verbatim.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Budget and preferences"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} dto.RecommendationError
// @Failure 429 {object} dto.RecommendationError
// @Failure 500 {object} dto.RecommendationError
// @Router /recommendations [post]
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecommendationBody))
	if err != nil {
		h.writeError(w, recommendation.NewError(recommendation.ErrInvalidPayload, "", err))
		return
	}

	res, err := h.service.Recommend(r.Context(), body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteRawJSON(w, http.StatusOK, res.Raw)
}

// writeError renders {"error"} for request problems and
// {"error", "details"} for procedure failures.
func (h *RecommendationHandler) writeError(w http.ResponseWriter, err error) {
	var recErr *recommendation.Error
	if !stderrors.As(err, &recErr) {
		recErr = recommendation.NewError(recommendation.ErrProcedureUnavailable, err.Error(), err)
	}

	if recErr.ClientError() {
		utils.WriteJSON(w, recErr.StatusCode(), map[string]string{
			"error": recErr.Message(),
		})
		return
	}

	details := recErr.Detail
	if details == "" && recErr.Err != nil {
		details = recErr.Err.Error()
	}

	h.logger.WithFields(map[string]interface{}{
		"kind":    string(recErr.Kind),
		"details": details,
	}).Warn("Recommendation failed")

	utils.WriteJSON(w, recErr.StatusCode(), map[string]string{
		"error":   recErr.Message(),
		"details": details,
	})
}
