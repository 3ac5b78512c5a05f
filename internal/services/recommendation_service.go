package services

import (
	"context"
	"errors"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
	"github.com/festhub/eventhub/internal/recommender"
)

// RecommendationService implements recommendation.Service
type RecommendationService struct {
	runner recommendation.Runner
	logger *logger.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(runner recommendation.Runner, log *logger.Logger) recommendation.Service {
	return &RecommendationService{
		runner: runner,
		logger: log,
	}
}

// Recommend validates the payload, runs the decision procedure and
// translates its output.
func (s *RecommendationService) Recommend(ctx context.Context, payload []byte) (*recommendation.Result, error) {
	req, err := recommender.Normalize(payload)
	if err != nil {
		s.record(err, nil)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"budget":         req.Budget,
		"event_types":    req.EventTypes,
		"has_min_events": req.MinEvents != nil,
	}).Debug("Running recommendation")

	raw, err := s.runner.Invoke(ctx, req)
	if err != nil {
		s.record(err, nil)
		return nil, err
	}

	res, err := recommender.Translate(raw)
	s.record(err, res)
	if err != nil {
		return nil, err
	}

	if res.Kind == recommendation.KindUnrecognized {
		s.logger.Warn("Decision procedure returned an unrecognized document")
	}
	if res.Selection != nil {
		for _, c := range res.Selection.SelectedEvents {
			if c.ExplanationFailed() {
				s.logger.WithFields(map[string]interface{}{
					"event": c.Event,
				}).Warn("Explanation generation failed for candidate")
			}
		}
	}

	return res, nil
}

func (s *RecommendationService) record(err error, res *recommendation.Result) {
	if err == nil {
		metrics.RecordRecommendation(string(res.Kind))
		return
	}

	var recErr *recommendation.Error
	if errors.As(err, &recErr) {
		metrics.RecordRecommendation(string(recErr.Kind))
		if !recErr.ClientError() {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"kind": string(recErr.Kind),
			}).Error("Recommendation failed")
		}
		return
	}

	metrics.RecordRecommendation("error")
	s.logger.ErrorWithErr(err, "Recommendation failed")
}
