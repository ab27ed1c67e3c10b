// Package prompts holds the LLM prompt templates. Each embedded JSON file maps a
// prompt key to a text/template body.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// prompt is one parsed entry of a prompt file.
type prompt struct {
	text string
	tmpl *template.Template
}

// library is every embedded prompt, keyed by file name then prompt key.
type library map[string]map[string]prompt

var loadLibrary = sync.OnceValues(func() (library, error) {
	return parseFiles(promptFiles)
})

func parseFiles(fsys fs.FS) (library, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt files: %w", err)
	}

	lib := make(library, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var raw map[string]string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}

		entries := make(map[string]prompt, len(raw))
		for key, text := range raw {
			tmpl, err := template.New(name + ":" + key).Option("missingkey=error").Parse(text)
			if err != nil {
				return nil, fmt.Errorf("failed to parse prompt %s in %s: %w", key, name, err)
			}
			entries[key] = prompt{text: text, tmpl: tmpl}
		}
		lib[name] = entries
	}
	return lib, nil
}

func lookup(filename, key string) (prompt, error) {
	lib, err := loadLibrary()
	if err != nil {
		return prompt{}, err
	}
	entries, ok := lib[filename]
	if !ok {
		return prompt{}, fmt.Errorf("prompt file %s not found", filename)
	}
	p, ok := entries[key]
	if !ok {
		return prompt{}, fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return p, nil
}

// Get returns the raw template text, e.g. Get("evaluation.json", "evaluate-match").
func Get(filename, key string) (string, error) {
	p, err := lookup(filename, key)
	if err != nil {
		return "", err
	}
	return p.text, nil
}

// MustGet is like Get but panics when the prompt does not exist.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Render executes a prompt template with data. Every placeholder must be
// present in data.
func Render(filename, key string, data map[string]string) (string, error) {
	p, err := lookup(filename, key)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := p.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", key, err)
	}
	return sb.String(), nil
}

// Keys returns the sorted prompt keys of a file.
func Keys(filename string) ([]string, error) {
	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	entries, ok := lib[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", filename)
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
