// Package picker selects catalog events that fit a budget. It backs the
// eventpicker command that the API server runs per recommendation request.
package picker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/festhub/eventhub/internal/domain/recommendation"
)

// Engagement weights
const (
	popularityWeight = 0.5
	sentimentWeight  = 0.35
	reviewWeight     = 0.15
	reviewSaturation = 50
)

// Picker ranks and selects candidates
type Picker struct {
	catalog   []Candidate
	explainer Explainer
	// Parallel bounds concurrent explanation calls
	Parallel int
}

// New creates a picker over catalog. A nil explainer uses TemplateExplainer.
func New(catalog []Candidate, explainer Explainer) *Picker {
	if explainer == nil {
		explainer = TemplateExplainer{}
	}
	return &Picker{catalog: catalog, explainer: explainer, Parallel: 4}
}

// Engagement scores a candidate between 0 and 1
func Engagement(c Candidate) float64 {
	reviews := math.Min(float64(c.Reviews), reviewSaturation) / reviewSaturation
	score := popularityWeight*float64(c.Popularity)/10 + sentimentWeight*c.Sentiment + reviewWeight*reviews
	return math.Round(score*1000) / 1000
}

// Pick returns a Selection or an Empty result for req. Exactly one of the
// two return values is non-nil when err is nil.
func (p *Picker) Pick(ctx context.Context, req *recommendation.Request) (*recommendation.Selection, *recommendation.Empty, error) {
	if req.Budget <= 0 {
		return nil, nil, fmt.Errorf("budget must be positive, got %v", req.Budget)
	}

	ranked := p.rank(req)

	chosen := greedy(ranked, req.Budget)
	minEvents := 0
	if req.MinEvents != nil {
		minEvents = int(math.Ceil(*req.MinEvents))
	}
	if len(chosen) < minEvents {
		// Trade score for count: cheapest first fits the most events
		byCost := append([]scored(nil), ranked...)
		sort.SliceStable(byCost, func(i, j int) bool { return byCost[i].Cost < byCost[j].Cost })
		chosen = greedy(byCost, req.Budget)
		sort.SliceStable(chosen, func(i, j int) bool { return chosen[i].score > chosen[j].score })
	}

	if len(chosen) == 0 || len(chosen) < minEvents {
		return nil, &recommendation.Empty{
			Message:        emptyMessage(req.Budget, minEvents, len(chosen)),
			Budget:         req.Budget,
			EventsSelected: 0,
		}, nil
	}

	sel := &recommendation.Selection{
		SelectedEvents: make([]recommendation.CandidateEvent, len(chosen)),
		Budget:         req.Budget,
		EventsSelected: len(chosen),
	}
	for i, c := range chosen {
		sel.TotalEstimatedCost += c.Cost
		sel.SelectedEvents[i] = recommendation.CandidateEvent{
			Event:           c.Event,
			Type:            c.Type,
			Cost:            c.Cost,
			EngagementScore: c.score,
			Popularity:      c.Popularity,
			AvgSentiment:    c.Sentiment,
			ReviewCount:     c.Reviews,
		}
	}

	p.explain(ctx, req, sel.SelectedEvents)
	return sel, nil, nil
}

type scored struct {
	Candidate
	score float64
}

// rank filters the catalog, dedupes by event name keeping the best score
// and orders by score, then cost, then name.
func (p *Picker) rank(req *recommendation.Request) []scored {
	types := make(map[string]bool, len(req.EventTypes))
	for _, t := range req.EventTypes {
		types[strings.ToLower(strings.TrimSpace(t))] = true
	}

	var out []scored
	for _, c := range p.catalog {
		if c.Cost < 0 {
			continue
		}
		if len(types) > 0 && !types[strings.ToLower(c.Type)] {
			continue
		}
		if req.MinPopularity != nil && float64(c.Popularity) < *req.MinPopularity {
			continue
		}
		out = append(out, scored{Candidate: c, score: Engagement(c)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Event < out[j].Event
	})

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, s := range out {
		key := strings.ToLower(s.Event)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, s)
	}
	return deduped
}

func greedy(candidates []scored, budget float64) []scored {
	var chosen []scored
	total := 0.0
	for _, c := range candidates {
		if total+c.Cost <= budget {
			chosen = append(chosen, c)
			total += c.Cost
		}
	}
	return chosen
}

// explain fills in explanations concurrently. A failed call is recorded in
// the explanation text rather than failing the pick.
func (p *Picker) explain(ctx context.Context, req *recommendation.Request, events []recommendation.CandidateEvent) {
	g, gctx := errgroup.WithContext(ctx)
	if p.Parallel > 0 {
		g.SetLimit(p.Parallel)
	}
	for i := range events {
		g.Go(func() error {
			text, err := p.explainer.Explain(gctx, req, events[i])
			if err != nil {
				events[i].Explanation = "Explanation generation failed: " + err.Error()
				return nil
			}
			events[i].Explanation = text
			return nil
		})
	}
	_ = g.Wait()
}

func formatRupees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func emptyMessage(budget float64, minEvents, fit int) string {
	if fit == 0 || minEvents == 0 {
		return fmt.Sprintf("No events can be organized within your budget of Rs %s.", formatRupees(budget))
	}
	return fmt.Sprintf("Only %d of the %d requested events can be organized within your budget of Rs %s.", fit, minEvents, formatRupees(budget))
}
