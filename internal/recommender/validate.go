package recommender

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/festhub/eventhub/internal/domain/recommendation"
)

// Normalize turns a raw client payload into a Request. Only the budget can
// reject the request; optional fields that fail their check are dropped.
func Normalize(payload []byte) (*recommendation.Request, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, recommendation.NewError(recommendation.ErrInvalidPayload, "", nil)
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, recommendation.NewError(recommendation.ErrInvalidPayload, "", err)
	}
	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, recommendation.NewError(recommendation.ErrInvalidPayload, "", nil)
	}

	budget, ok := numeric(fields["budget"])
	if !ok || budget <= 0 {
		return nil, recommendation.NewError(recommendation.ErrInvalidBudget, "", nil)
	}

	req := &recommendation.Request{Budget: budget}

	if n, ok := numeric(fields["min_events"]); ok && n > 0 {
		req.MinEvents = &n
	}
	if types, ok := stringList(fields["event_types"]); ok {
		req.EventTypes = types
	}
	if p, ok := numeric(fields["min_popularity"]); ok && p >= 0 {
		req.MinPopularity = &p
	}

	return req, nil
}

// numeric accepts JSON numbers and strings holding a finite decimal
func numeric(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringList accepts a non-empty array made only of strings
func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// EncodeArgument serializes a request as the single compact JSON argument
// passed to the decision procedure. HTML characters are written as-is.
func EncodeArgument(req *recommendation.Request) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
