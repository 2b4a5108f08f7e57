package api

import "encoding/json"

// NormalizeEnvelope unwraps the payload from the response body. The server
// wraps payloads inconsistently across endpoints, so unwrapping follows a
// fixed precedence:
//
//  1. a non-null "data" field,
//  2. else a non-null "content" field,
//  3. else the body itself.
//
// A body that is not a JSON object is returned unchanged.
func NormalizeEnvelope(body []byte) json.RawMessage {
	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return body
	}

	if isPresent(envelope.Data) {
		return envelope.Data
	}
	if isPresent(envelope.Content) {
		return envelope.Content
	}
	return body
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
