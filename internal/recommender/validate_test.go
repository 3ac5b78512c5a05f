package recommender

import (
	"errors"
	"testing"

	"github.com/festhub/eventhub/internal/domain/recommendation"
)

func TestNormalize_RejectsPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *recommendation.Error
	}{
		{"empty body", "", recommendation.ErrPayload},
		{"not json", "budget=10", recommendation.ErrPayload},
		{"array", `[{"budget": 10}]`, recommendation.ErrPayload},
		{"number", `42`, recommendation.ErrPayload},
		{"string", `"hello"`, recommendation.ErrPayload},
		{"null", `null`, recommendation.ErrPayload},
		{"missing budget", `{}`, recommendation.ErrBudget},
		{"zero budget", `{"budget": 0}`, recommendation.ErrBudget},
		{"negative budget", `{"budget": -5}`, recommendation.ErrBudget},
		{"non-numeric string", `{"budget": "lots"}`, recommendation.ErrBudget},
		{"empty string", `{"budget": ""}`, recommendation.ErrBudget},
		{"boolean", `{"budget": true}`, recommendation.ErrBudget},
		{"null budget", `{"budget": null}`, recommendation.ErrBudget},
		{"object budget", `{"budget": {"amount": 5}}`, recommendation.ErrBudget},
		{"infinite string", `{"budget": "Inf"}`, recommendation.ErrBudget},
		{"nan string", `{"budget": "NaN"}`, recommendation.ErrBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize([]byte(tt.payload))
			if err == nil {
				t.Fatalf("expected error, got request %+v", req)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want.Kind, err)
			}
			var recErr *recommendation.Error
			if errors.As(err, &recErr) && recErr.StatusCode() != 400 {
				t.Errorf("expected status 400, got %d", recErr.StatusCode())
			}
		})
	}
}

func TestNormalize_Budget(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
	}{
		{"number", `{"budget": 50000}`, 50000},
		{"decimal", `{"budget": 1234.5}`, 1234.5},
		{"numeric string", `{"budget": "75000"}`, 75000},
		{"padded string", `{"budget": " 20.25 "}`, 20.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize([]byte(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Budget != tt.want {
				t.Errorf("expected budget %v, got %v", tt.want, req.Budget)
			}
		})
	}
}

func TestNormalize_DropsInvalidOptionals(t *testing.T) {
	payload := `{
		"budget": 1000,
		"min_events": 0,
		"event_types": ["Concert", 3],
		"min_popularity": -1
	}`

	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MinEvents != nil {
		t.Errorf("expected min_events dropped, got %v", *req.MinEvents)
	}
	if req.EventTypes != nil {
		t.Errorf("expected event_types dropped, got %v", req.EventTypes)
	}
	if req.MinPopularity != nil {
		t.Errorf("expected min_popularity dropped, got %v", *req.MinPopularity)
	}
}

func TestNormalize_KeepsValidOptionals(t *testing.T) {
	payload := `{"budget": "500", "min_events": "2", "event_types": ["Workshop"], "min_popularity": 0}`

	req, err := Normalize([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MinEvents == nil || *req.MinEvents != 2 {
		t.Errorf("expected min_events 2, got %v", req.MinEvents)
	}
	if len(req.EventTypes) != 1 || req.EventTypes[0] != "Workshop" {
		t.Errorf("expected event_types [Workshop], got %v", req.EventTypes)
	}
	if req.MinPopularity == nil || *req.MinPopularity != 0 {
		t.Errorf("expected min_popularity 0, got %v", req.MinPopularity)
	}
}

func TestNormalize_EmptyEventTypesDropped(t *testing.T) {
	req, err := Normalize([]byte(`{"budget": 10, "event_types": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.EventTypes != nil {
		t.Errorf("expected event_types dropped, got %v", req.EventTypes)
	}
}

func TestEncodeArgument_FieldOrder(t *testing.T) {
	req, err := Normalize([]byte(`{
		"min_popularity": 5,
		"event_types": ["Concert", "Workshop"],
		"min_events": 2,
		"budget": 50000
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := EncodeArgument(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"budget":50000,"min_events":2,"event_types":["Concert","Workshop"],"min_popularity":5}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEncodeArgument_OmitsAbsentFields(t *testing.T) {
	got, err := EncodeArgument(&recommendation.Request{Budget: 300})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"budget":300}` {
		t.Errorf("expected only budget, got %s", got)
	}
}

func TestEncodeArgument_DoesNotEscapeHTML(t *testing.T) {
	req := &recommendation.Request{Budget: 1, EventTypes: []string{"R&B", "<x>"}}

	got, err := EncodeArgument(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"budget":1,"event_types":["R&B","<x>"]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
