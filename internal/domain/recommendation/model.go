package recommendation

import (
	"context"
	"strings"
)

// Request is a validated recommendation request. Optional fields are nil
// when the client omitted them or supplied a value that failed its check.
// Field order matters: it is the order of the serialized argument.
type Request struct {
	Budget        float64  `json:"budget"`
	MinEvents     *float64 `json:"min_events,omitempty"`
	EventTypes    []string `json:"event_types,omitempty"`
	MinPopularity *float64 `json:"min_popularity,omitempty"`
}

// CandidateEvent is one event chosen by the decision procedure
type CandidateEvent struct {
	Event           string  `json:"Event"`
	Type            string  `json:"Type"`
	Cost            float64 `json:"Cost"`
	EngagementScore float64 `json:"Engagement_Score"`
	Popularity      int     `json:"Popularity"`
	AvgSentiment    float64 `json:"Avg_Sentiment"`
	ReviewCount     int     `json:"Review_Count"`
	Explanation     string  `json:"Explanation"`
}

// ExplanationFailed reports whether the explanation marks a failed generation
func (c CandidateEvent) ExplanationFailed() bool {
	return strings.Contains(strings.ToLower(c.Explanation), "failed")
}

// Selection is the success shape of a recommendation
type Selection struct {
	SelectedEvents     []CandidateEvent `json:"selected_events"`
	TotalEstimatedCost float64          `json:"total_estimated_cost"`
	Budget             float64          `json:"budget"`
	EventsSelected     int              `json:"events_selected"`
}

// Empty is returned when nothing fits the budget
type Empty struct {
	Message        string  `json:"message"`
	Budget         float64 `json:"budget"`
	EventsSelected int     `json:"events_selected"`
}

// Kind tags which shape the decision procedure returned
type Kind string

const (
	KindSelection    Kind = "selection"
	KindEmpty        Kind = "empty"
	KindUnrecognized Kind = "unrecognized"
)

// Result is a translated decision procedure output. Raw always holds the
// exact JSON document to forward to the client.
type Result struct {
	Kind      Kind
	Selection *Selection
	Empty     *Empty
	Raw       []byte
}

// Runner invokes the external decision procedure and returns its stdout
type Runner interface {
	Invoke(ctx context.Context, req *Request) ([]byte, error)
}

// Service runs the full validate, invoke, translate pipeline
type Service interface {
	Recommend(ctx context.Context, payload []byte) (*Result, error)
}
