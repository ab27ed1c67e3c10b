package ingestion

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	namePattern       = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	fileNameSeparator = regexp.MustCompile(`[-_\s]+`)
)

// ExtractCandidateName takes the first non-empty line when it looks like a
// name (letters and spaces, at most four words) and otherwise derives one
// from the file name.
func ExtractCandidateName(text, fileName string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if namePattern.MatchString(line) && len(strings.Fields(line)) <= 4 {
			return line
		}
		break
	}

	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return strings.TrimSpace(fileNameSeparator.ReplaceAllString(name, " "))
}
