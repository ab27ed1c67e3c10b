// Package schemas holds the JSON Schemas for the repository's JSON documents.
package schemas

import "embed"

// Files contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var Files embed.FS
