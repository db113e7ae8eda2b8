package providers

import (
	"encoding/json"
	"testing"
)

func TestParseStructuredJSON_StripsCodeFence(t *testing.T) {
	content := "```json\n{\"ok\":true}\n```"
	got, err := ParseStructuredJSON(content)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("failed to unmarshal parsed JSON: %v", err)
	}
	if ok, _ := parsed["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %#v", parsed)
	}
}

func TestParseStructuredJSON_SurroundingProse(t *testing.T) {
	content := "Sure! Here is the answer:\n{\"choice\": \"B\"}\nHope this helps."
	got, err := ParseStructuredJSON(content)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	if string(got) != `{"choice":"B"}` {
		t.Fatalf("unexpected normalized output: %s", got)
	}
}

func TestParseStructuredJSON_Rejects(t *testing.T) {
	for name, content := range map[string]string{
		"empty":     "   ",
		"prose":     "the answer is B",
		"truncated": `{"choice": "B"`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseStructuredJSON(content); err == nil {
				t.Fatalf("expected error for %q", content)
			}
		})
	}
}

func TestValidateWithSchema_EnforcesSchema(t *testing.T) {
	raw := json.RawMessage(`{
		"name":"answer",
		"strict":true,
		"schema":{
			"type":"object",
			"properties":{
				"choice":{"type":"string","enum":["A","B"]}
			},
			"required":["choice"],
			"additionalProperties":false
		}
	}`)
	schema, err := CompileSchema(raw)
	if err != nil {
		t.Fatalf("CompileSchema() error = %v", err)
	}

	if err := ValidateWithSchema(schema, json.RawMessage(`{"choice":"A"}`)); err != nil {
		t.Fatalf("ValidateWithSchema(valid) error = %v", err)
	}
	if err := ValidateWithSchema(schema, json.RawMessage(`{"choice":"C"}`)); err == nil {
		t.Fatal("expected enum violation")
	}
	if err := ValidateWithSchema(schema, json.RawMessage(`{"choice":"A","extra":1}`)); err == nil {
		t.Fatal("expected additionalProperties violation")
	}
	if err := ValidateWithSchema(schema, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected required violation")
	}
}

func TestCompileSchema_InvalidDocument(t *testing.T) {
	if _, err := CompileSchema(json.RawMessage(`not json`)); err == nil {
		t.Fatal("expected error for invalid schema JSON")
	}
}
