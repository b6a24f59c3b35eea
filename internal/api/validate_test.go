package api

import (
	"strings"
	"testing"
)

func TestValidatePayloadAccepts(t *testing.T) {
	raw := []byte(`{"success": true, "hint_text": "Dùng Pythagore", "hint_level": 1, "max_hints_reached": false}`)
	if err := validatePayload(schemaHint, raw); err != nil {
		t.Errorf("valid hint payload rejected: %v", err)
	}
}

func TestValidatePayloadRejectsMissingRequired(t *testing.T) {
	raw := []byte(`{"success": true}`)
	err := validatePayload(schemaHint, raw)
	if err == nil {
		t.Fatal("payload missing hint_text should be rejected")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePayloadRejectsWrongType(t *testing.T) {
	raw := []byte(`{"success": true, "known_facts": "AB = 3cm"}`)
	if err := validatePayload(schemaStatus, raw); err == nil {
		t.Fatal("known_facts must be an array, not a string")
	}
}

func TestValidatePayloadInvalidJSON(t *testing.T) {
	err := validatePayload(schemaChat, []byte(`{"success":`))
	if err == nil {
		t.Fatal("truncated JSON should be rejected")
	}
}

func TestValidatePayloadUnknownSchema(t *testing.T) {
	if err := validatePayload("no-such-schema", []byte(`{}`)); err == nil {
		t.Fatal("unknown schema name should fail")
	}
}

func TestIllustrationSchemaAllowsNullImage(t *testing.T) {
	raw := []byte(`{"success": false, "message": "", "b64_string_viz": null, "error": "render failed"}`)
	if err := validatePayload(schemaIllustration, raw); err != nil {
		t.Errorf("null b64_string_viz should be accepted: %v", err)
	}
}

func TestCompiledSchemaCached(t *testing.T) {
	a, err := getCompiledSchema(schemaValidation)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := getCompiledSchema(schemaValidation)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if a != b {
		t.Error("expected the cached compiled schema on the second call")
	}
}
