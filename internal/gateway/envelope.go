package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// The backend wraps responses in a loose envelope: success bodies arrive
// under "body", error detail under one of several historical field names
// ("message", "msg", "details", "error"). The JMESPath expressions below are
// the one place that variance is absorbed; consumers only ever see Result.
const (
	payloadExpr = "body"
	messageExpr = "message || msg || details || error"
)

// extractPayload returns the envelope body as raw JSON. A response without
// the envelope (or without a body field) is passed through whole, so plain
// JSON endpoints keep working.
func extractPayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	inner, err := jmespath.Search(payloadExpr, doc)
	if err != nil || inner == nil {
		return json.RawMessage(body)
	}
	raw, err := json.Marshal(inner)
	if err != nil {
		return json.RawMessage(body)
	}
	return raw
}

// extractMessage returns the first non-empty error detail field, or "" when
// the body carries none.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	found, err := jmespath.Search(messageExpr, doc)
	if err != nil {
		return ""
	}
	switch v := found.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		// Some endpoints return structured detail; keep it readable.
		raw, merr := json.Marshal(v)
		if merr != nil {
			return ""
		}
		return string(raw)
	}
}

// ErrorMessage returns the result's error detail, falling back to the HTTP
// status text so callers always have something to surface.
func (r Result) ErrorMessage() string {
	if r.Message != "" {
		return r.Message
	}
	if text := http.StatusText(r.Status); text != "" {
		return fmt.Sprintf("%s (status %d)", text, r.Status)
	}
	return fmt.Sprintf("request failed (status %d)", r.Status)
}
