package recommender

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/festhub/eventhub/internal/domain/recommendation"
)

// Translate parses decision procedure output. Any valid JSON document is
// accepted and kept verbatim in Result.Raw; the two known shapes are also
// decoded for Go callers.
func Translate(raw []byte) (*recommendation.Result, error) {
	out := bytes.TrimSpace(raw)
	if !json.Valid(out) {
		return nil, recommendation.NewError(recommendation.ErrMalformedResult, string(out), nil)
	}

	res := &recommendation.Result{
		Kind: recommendation.KindUnrecognized,
		Raw:  out,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(out, &fields); err != nil || fields == nil {
		return res, nil
	}

	if _, ok := fields["selected_events"]; ok {
		var sel recommendation.Selection
		if err := json.Unmarshal(out, &sel); err == nil {
			res.Kind = recommendation.KindSelection
			res.Selection = &sel
		}
		return res, nil
	}

	if _, ok := fields["message"]; ok {
		var empty recommendation.Empty
		if err := json.Unmarshal(out, &empty); err == nil {
			res.Kind = recommendation.KindEmpty
			res.Empty = &empty
		}
	}

	return res, nil
}
