package llm

import "testing"

func TestExtractJSONBareObject(t *testing.T) {
	var out struct {
		Score float64 `json:"match_score"`
	}
	if err := ExtractJSON(`{"match_score": 0.85}`, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.Score != 0.85 {
		t.Fatalf("unexpected score: %v", out.Score)
	}
}

func TestExtractJSONWrappedInProse(t *testing.T) {
	text := "Here is my assessment:\n\n```json\n{\"match_score\": 0.7, \"reasoning\": \"solid overlap {with caveats}\"}\n```\nLet me know if you need more."
	var out struct {
		Score     float64 `json:"match_score"`
		Reasoning string  `json:"reasoning"`
	}
	if err := ExtractJSON(text, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.Score != 0.7 {
		t.Fatalf("unexpected score: %v", out.Score)
	}
	if out.Reasoning != "solid overlap {with caveats}" {
		t.Fatalf("brace inside string broke the scan: %q", out.Reasoning)
	}
}

func TestExtractJSONArray(t *testing.T) {
	text := "Enhanced bullets below.\n[\"Led migration of 4 services\", \"Cut latency 40%\"]"
	var out []string
	if err := ExtractJSON(text, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out) != 2 || out[1] != "Cut latency 40%" {
		t.Fatalf("unexpected array: %v", out)
	}
}

func TestExtractJSONEscapedQuote(t *testing.T) {
	text := `noise {"text": "she said \"go\" and {left}"} trailing`
	var out struct {
		Text string `json:"text"`
	}
	if err := ExtractJSON(text, &out); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.Text != `she said "go" and {left}` {
		t.Fatalf("unexpected text: %q", out.Text)
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	var out map[string]any
	if err := ExtractJSON("I could not produce a structured answer.", &out); err == nil {
		t.Fatalf("expected failure when no payload present")
	}
	if err := ExtractJSON("   ", &out); err == nil {
		t.Fatalf("expected failure for empty response")
	}
}
