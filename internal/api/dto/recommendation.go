package dto

import "github.com/festhub/eventhub/internal/domain/recommendation"

// RecommendationRequest documents the accepted payload. The handler passes
// the raw body on so that invalid optional fields can be dropped instead of
// failing the decode.
type RecommendationRequest struct {
	Budget        float64  `json:"budget" example:"5000"`
	MinEvents     float64  `json:"min_events,omitempty" example:"2"`
	EventTypes    []string `json:"event_types,omitempty"`
	MinPopularity float64  `json:"min_popularity,omitempty" example:"5"`
}

// RecommendationResponse documents the success shape produced by the
// decision procedure. It is forwarded unchanged.
type RecommendationResponse = recommendation.Selection

// RecommendationError is the error shape of the recommendation endpoint
type RecommendationError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
