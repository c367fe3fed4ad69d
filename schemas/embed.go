// Package schemas holds the JSON Schemas for the artifacts resumate writes.
package schemas

import _ "embed"

// ResumePayload is the JSON Schema of a rewritten resume payload
//
//go:embed resume_payload.schema.json
var ResumePayload string
