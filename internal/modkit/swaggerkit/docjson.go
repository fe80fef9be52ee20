// Package swaggerkit serves the embedded OpenAPI document and the Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"
)

//go:embed openapi.json
var openapiDoc []byte

// DocMutator edits the decoded document before it is served
type DocMutator func(doc map[string]any)

var (
	mu       sync.Mutex
	mutators []DocMutator
)

// docReader returns the raw document, tests swap it
var docReader = func() []byte { return openapiDoc }

// Register adds m to the mutators run on every doc.json request
func Register(m DocMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	mutators = append(mutators, m)
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal(docReader(), &doc); err != nil {
			http.Error(w, "openapi document is not valid JSON", http.StatusInternalServerError)
			return
		}
		withErrorEnvelope(doc)

		mu.Lock()
		ms := append([]DocMutator(nil), mutators...)
		mu.Unlock()
		for _, m := range ms {
			m(doc)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// errorEnvelope mirrors pnet.Envelope on failure. Built per call since
// mutators may edit it
func errorEnvelope() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Error envelope returned by every /api/v1 endpoint",
		"required":    []any{"status_code", "status"},
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
	}
}

// withErrorEnvelope defines components.schemas.ErrorResponse unless the
// document has its own, and gives every operation without a 500 one that
// points at it
func withErrorEnvelope(doc map[string]any) {
	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorEnvelope()
	}

	internal := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
	paths, _ := doc["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, v := range ops {
			op, ok := v.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, ok := responses["500"]; !ok {
				responses["500"] = internal
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing or not an object
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
