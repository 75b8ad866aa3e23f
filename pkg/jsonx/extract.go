// Package jsonx extracts strict JSON out of free-form model output.
package jsonx

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparsable is returned when no valid JSON can be extracted.
var ErrUnparsable = errors.New("jsonx: unparsable")

const (
	fence     = "```"
	jsonFence = "```json"
)

// Extract locates the JSON payload inside raw model output and validates
// it with a strict parse. Lookup order: the first ```json fenced block,
// then the first bare ``` fenced block, then the text verbatim. Only the
// first fence pair is honored; prose wrapped around unfenced JSON is not
// supported and fails the parse.
func Extract(raw string) (json.RawMessage, error) {
	candidate := raw
	if strings.Contains(raw, jsonFence) {
		candidate = between(raw, jsonFence)
	} else if strings.Contains(raw, fence) {
		candidate = between(raw, fence)
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, ErrUnparsable
	}
	if !json.Valid([]byte(candidate)) {
		return nil, ErrUnparsable
	}
	return json.RawMessage(candidate), nil
}

// Decode extracts the JSON payload from raw and unmarshals it into v.
func Decode(raw string, v any) error {
	payload, err := Extract(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return ErrUnparsable
	}
	return nil
}

// between returns the text after the first open marker up to the next
// closing fence, or everything after the marker when no close exists.
func between(s, open string) string {
	_, rest, _ := strings.Cut(s, open)
	body, _, _ := strings.Cut(rest, fence)
	return body
}
