package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names for the response payloads checked at the client boundary.
const (
	schemaCreateSession = "create-session"
	schemaChat          = "chat"
	schemaStatus        = "status"
	schemaHint          = "hint"
	schemaValidation    = "validation"
	schemaSolution      = "solution"
	schemaIllustration  = "illustration"
)

// payloadSchemas pins the shape each endpoint must return. The backend
// is loosely typed; anything that doesn't match is a malformed payload
// and collapses into the normalized failure path.
var payloadSchemas = map[string]map[string]any{
	schemaCreateSession: {
		"type":     "object",
		"required": []any{"session_id"},
		"properties": map[string]any{
			"session_id":      map[string]any{"type": "string"},
			"message":         map[string]any{"type": "string"},
			"total_questions": map[string]any{"type": "integer"},
		},
	},
	schemaChat: {
		"type":     "object",
		"required": []any{"success", "reply"},
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"reply":   map[string]any{"type": "string"},
		},
	},
	schemaStatus: {
		"type":     "object",
		"required": []any{"success", "known_facts"},
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"known_facts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
	schemaHint: {
		"type":     "object",
		"required": []any{"success", "hint_text", "max_hints_reached"},
		"properties": map[string]any{
			"success":           map[string]any{"type": "boolean"},
			"hint_text":         map[string]any{"type": "string"},
			"hint_level":        map[string]any{"type": "integer"},
			"max_hints_reached": map[string]any{"type": "boolean"},
		},
	},
	schemaValidation: {
		"type":     "object",
		"required": []any{"success", "is_correct", "feedback"},
		"properties": map[string]any{
			"success":       map[string]any{"type": "boolean"},
			"is_correct":    map[string]any{"type": "boolean"},
			"feedback":      map[string]any{"type": "string"},
			"moved_to_next": map[string]any{"type": "boolean"},
		},
	},
	schemaSolution: {
		"type":     "object",
		"required": []any{"success", "solution_text"},
		"properties": map[string]any{
			"success":       map[string]any{"type": "boolean"},
			"solution_text": map[string]any{"type": "string"},
			"moved_to_next": map[string]any{"type": "boolean"},
		},
	},
	schemaIllustration: {
		"type":     "object",
		"required": []any{"success"},
		"properties": map[string]any{
			"success":        map[string]any{"type": "boolean"},
			"message":        map[string]any{"type": "string"},
			"b64_string_viz": map[string]any{"type": []any{"string", "null"}},
			"error":          map[string]any{"type": []any{"string", "null"}},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload validates raw JSON against the named schema.
func validatePayload(name string, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(name)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("malformed %s payload: %w", name, err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and
// caches it.
func getCompiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := payloadSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
