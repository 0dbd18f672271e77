package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON locates the first balanced JSON object or array embedded in
// text and unmarshals it into out. Reasoning models frequently wrap their
// structured payload in prose or code fences; this is the best-effort
// recovery the pipeline attempts before declaring a stage failure.
func ExtractJSON(text string, out any) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("llm: empty response, no payload to extract")
	}
	// Fast path: the whole response is the payload.
	if err := json.Unmarshal([]byte(trimmed), out); err == nil {
		return nil
	}
	candidate, ok := firstBalanced(trimmed)
	if !ok {
		return fmt.Errorf("llm: no JSON payload found in response")
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("llm: embedded payload invalid: %w", err)
	}
	return nil
}

// firstBalanced scans for the first top-level {...} or [...] span, tracking
// nesting depth and skipping bracket characters inside JSON strings.
func firstBalanced(text string) (string, bool) {
	start := -1
	var open, close byte
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if start == -1 {
			if c == '{' {
				start, open, close = i, '{', '}'
				depth = 1
			} else if c == '[' {
				start, open, close = i, '[', ']'
				depth = 1
			}
			continue
		}
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
