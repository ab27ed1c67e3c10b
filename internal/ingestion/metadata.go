package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a posting's text came from.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"` // text came from a headless render
	Hash      string `json:"hash"`               // SHA256 of the cleaned text
	FetchedAt string `json:"fetched_at"`         // RFC3339
}

// NewMetadata stamps content with its hash and the current time.
func NewMetadata(content, url string) Metadata {
	return Metadata{
		URL:       url,
		Hash:      computeHash(content),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
