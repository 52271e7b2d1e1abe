package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUnparseable is returned when no strategy could decode model output.
var ErrUnparseable = errors.New("unparseable model output")

// LooksLikeJSON reports whether the output (after fence stripping) opens
// with an object or array.
func LooksLikeJSON(input string) bool {
	s := CleanMarkdown(input)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// ExtractJSON cuts the outermost object or array out of chatty output,
// e.g. "Here is the plan: [ ... ] Hope it helps".
func ExtractJSON(input string) string {
	s := CleanMarkdown(input)
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s[start:]
	}
	return s[start : end+1]
}

// RepairJSON fixes the usual model mistakes: unquoted keys, single quotes,
// trailing commas, unclosed brackets, comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair: %w", err)
	}
	return repaired, nil
}

// ParseHJSON converts Hjson (comments, unquoted strings, optional commas)
// to standard JSON.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("hjson parse: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("hjson re-marshal: %w", err)
	}
	return string(out), nil
}

// SmartParse decodes model output into v, trying in order:
// plain JSON, repaired JSON, Hjson. It returns the JSON that worked.
func SmartParse(input string, v interface{}) (string, error) {
	candidate := ExtractJSON(input)

	// 1. Plain
	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return candidate, nil
	}

	// 2. Repair
	if repaired, err := RepairJSON(candidate); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return repaired, nil
		}
	}

	// 3. Hjson
	if converted, err := ParseHJSON(candidate); err == nil {
		if err := json.Unmarshal([]byte(converted), v); err == nil {
			return converted, nil
		}
	}

	return "", ErrUnparseable
}
