package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// splitDocument разбирает JSON-объект на известные поля и остальные атрибуты.
func splitDocument(data []byte, known ...string) (map[string]json.RawMessage, map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("document must be a JSON object")
	}

	fields := make(map[string]json.RawMessage, len(known))
	for _, key := range known {
		if v, ok := raw[key]; ok {
			fields[key] = v
			delete(raw, key)
		}
	}

	attrs := make(map[string]any, len(raw))
	for key, v := range raw {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, nil, err
		}
		attrs[key] = value
	}
	return fields, attrs, nil
}

// mergeDocument собирает плоский JSON-объект: атрибуты, поверх них известные поля.
func mergeDocument(fields map[string]any, attrs map[string]any) ([]byte, error) {
	doc := make(map[string]any, len(fields)+len(attrs))
	maps.Copy(doc, attrs)
	maps.Copy(doc, fields)
	return json.Marshal(doc)
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if isNull(raw) {
		return "", nil
	}
	err := json.Unmarshal(raw, &s)
	return s, err
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// deadlineLayouts - форматы, в которых клиент присылает дедлайн.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDeadline разбирает дедлайн в одном из поддерживаемых форматов.
func ParseDeadline(s string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline: %q", s)
}

func decodeDeadline(raw json.RawMessage) (*time.Time, error) {
	if isNull(raw) {
		return nil, nil
	}
	s, err := decodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}
	if s == "" {
		return nil, nil
	}
	t, err := ParseDeadline(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
