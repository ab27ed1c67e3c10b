package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	profile := `{"skills": ["Go", "SQL"], "experience_years": 6}`
	match := `{"match_score": 72, "status": "OK to Proceed"}`

	tests := map[string]struct {
		input string
		want  string
	}{
		"bare object":           {profile, profile},
		"json fence":            {"```json\n" + profile + "\n```", profile},
		"untagged fence":        {"```\n" + match + "\n```", match},
		"fence with other tag":  {"```javascript\n" + match + "\n```", match},
		"preamble":              {"Here is the evaluation:\n\n" + match, match},
		"preamble and epilogue": {"Result: " + match + "\nLet me know if you need more.", match},
		"array payload":         {"Skills found:\n[\"Go\", \"Kafka\"]", `["Go", "Kafka"]`},
		"escaped quotes":        {`Result: {"justification": "says \"expert\" in Go"}`, `{"justification": "says \"expert\" in Go"}`},
		"nested objects":        {`Output: {"profile": {"education": {"degree": "MSc"}}}`, `{"profile": {"education": {"degree": "MSc"}}}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_NoJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"prose", "  I could not evaluate this resume.  ", "I could not evaluate this resume."},
		{"truncated object", `{"skills": ["Go"`, `{"skills": ["Go"`},
		{"fenced prose", "```\nnothing here\n```", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestFirstJSONValue(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"object with array", `{"items": [1, 2, 3]}`, `{"items": [1, 2, 3]}`, true},
		{"string with braces inside", `{"template": "Hello {name}!"}`, `{"template": "Hello {name}!"}`, true},
		{"array of objects with trailing text", `[{"id": 1}, {"id": 2}] extra`, `[{"id": 1}, {"id": 2}]`, true},
		{"bracketed prose before payload", `See [note] and {curly} then {"ok": true}`, `{"ok": true}`, true},
		{"no brackets", "not json", "", false},
		{"never closes", `{"a": {"b": 1}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstJSONValue(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "short", truncate("short", 10))
}
