package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RecommendationService handles recommendation API calls
type RecommendationService struct {
	client *Client
}

// RecommendationRequest asks for a set of events within a budget
type RecommendationRequest struct {
	Budget        float64  `json:"budget"`
	MinEvents     *int     `json:"min_events,omitempty"`
	EventTypes    []string `json:"event_types,omitempty"`
	MinPopularity *float64 `json:"min_popularity,omitempty"`
}

// Recommend asks the recommender for events. The response is not wrapped
// in the success envelope.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendationRequest) (*Recommendation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	respBody, status, err := s.client.send(ctx, http.MethodPost, "/api/v1/recommendations", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, parseAPIError(status, respBody)
	}

	var rec Recommendation
	if err := json.Unmarshal(respBody, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &rec, nil
}
