package recommender

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
)

// BreakerConfig controls when the breaker opens
type BreakerConfig struct {
	Name        string
	MinRequests uint32
	FailureRate float64
	OpenTimeout time.Duration
}

// BreakerRunner stops launching processes after repeated failures
type BreakerRunner struct {
	next   recommendation.Runner
	cb     *gobreaker.CircuitBreaker[[]byte]
	name   string
	logger *logger.Logger
}

// NewBreakerRunner wraps next with a circuit breaker
func NewBreakerRunner(next recommendation.Runner, cfg BreakerConfig, log *logger.Logger) *BreakerRunner {
	if cfg.Name == "" {
		cfg.Name = "decision-procedure"
	}

	metrics.SetBreakerState(cfg.Name, stateToFloat(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRate
		},
		// A client hanging up is not a procedure failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
			metrics.SetBreakerState(name, stateToFloat(to))
		},
	})

	return &BreakerRunner{
		next:   next,
		cb:     cb,
		name:   cfg.Name,
		logger: log,
	}
}

// Invoke runs the wrapped runner unless the breaker is open
func (b *BreakerRunner) Invoke(ctx context.Context, req *recommendation.Request) ([]byte, error) {
	out, err := b.cb.Execute(func() ([]byte, error) {
		return b.next.Invoke(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, recommendation.NewError(recommendation.ErrProcedureUnavailable, "circuit breaker open", err)
	}
	return out, err
}

// State returns the current breaker state name
func (b *BreakerRunner) State() string {
	return b.cb.State().String()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
