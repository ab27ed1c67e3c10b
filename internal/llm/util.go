package llm

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// CleanJSONBlock returns the first complete JSON object or array in an LLM
// response, dropping markdown fences, conversational preamble and trailing
// text. When no value decodes, the trimmed input is returned unchanged.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))
	if value, ok := firstJSONValue(text); ok {
		return value
	}
	return text
}

// stripFence removes a surrounding ``` fence and its language tag.
func stripFence(text string) string {
	body, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && isFenceTag(body[:nl]) {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func isFenceTag(line string) bool {
	return len(line) < 20 && !strings.ContainsAny(line, " {[")
}

// firstJSONValue tries to decode an object or array at each '{' or '[' in
// turn, so brackets in prose before the payload are skipped. An unterminated
// value yields nothing rather than one of its nested values.
func firstJSONValue(text string) (string, bool) {
	for offset := 0; offset < len(text); offset++ {
		i := strings.IndexAny(text[offset:], "{[")
		if i < 0 {
			return "", false
		}
		offset += i

		var raw json.RawMessage
		err := json.NewDecoder(strings.NewReader(text[offset:])).Decode(&raw)
		switch {
		case err == nil:
			return string(raw), true
		case errors.Is(err, io.ErrUnexpectedEOF):
			// the value runs to the end of the text
			return "", false
		}
	}
	return "", false
}

// truncate shortens s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
