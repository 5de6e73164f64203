package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotObject is returned when a payload parses but is not a JSON object.
var ErrNotObject = errors.New("jsonutil: payload is not a JSON object")

// StripCodeFence removes a single surrounding markdown code fence
// (``` or ```json) from s. Text without a fence is returned trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// drop the info string ("json", "JSON", ...)
		if !strings.ContainsAny(body[:nl], "{[\"") {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// ParseObject decodes model text into a generic JSON object. It tolerates a
// surrounding code fence and an object that was double-encoded as a JSON
// string. Arrays, scalars and malformed text are errors.
func ParseObject(text string) (map[string]any, error) {
	raw := []byte(StripCodeFence(text))
	var v any
	if err := UnmarshalFlex(raw, &v); err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &v); err != nil {
			return nil, ErrNotObject
		}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// UnmarshalFlex unmarshals raw into v, retrying once with surrounding
// whitespace and a UTF-8 BOM removed.
func UnmarshalFlex(raw []byte, v any) error {
	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	if len(trimmed) == len(raw) {
		return err
	}
	return json.Unmarshal(trimmed, v)
}

// MarshalNoEscape encodes v into JSON without HTML escaping.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
