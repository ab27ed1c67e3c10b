// Package ingestion turns resumes and job postings into clean plain text and
// provides the offline profile extractor and match evaluator.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets and paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Headings lose their indentation.
	if strings.HasPrefix(trimmed, "#") {
		return spaceRun.ReplaceAllString(trimmed, " ")
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if isBulletLine(trimmed) {
		trimmed = "- " + strings.TrimSpace(trimmed[bulletWidth(trimmed):])
	}
	trimmed = spaceRun.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}

var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "▪ "}

func isBulletLine(line string) bool {
	return bulletWidth(line) > 0
}

func bulletWidth(line string) int {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return len(p)
		}
	}
	return 0
}

// ReadText reads a UTF-8 text file and cleans it.
func ReadText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}

// LoadPosting reads a job posting from disk. HTML files are reduced to their
// main text first.
func LoadPosting(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return ReadText(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	text, err := ExtractionFor(PlatformUnknown).Text(string(content))
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}
