package quiz

import (
	"encoding/json"
	"fmt"
)

// SchemaName identifies the decision schema in structured-output requests.
const SchemaName = "quiz_decision"

// DecisionSchema is the JSON schema for the answer model's output.
// The outer object follows the OpenAI json_schema response_format wrapper.
var DecisionSchema = map[string]any{
	"name":   SchemaName,
	"strict": true,
	"schema": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question that was asked, together with all of its options",
			},
			"choice": map[string]any{
				"type":        "string",
				"enum":        labelEnum(),
				"description": "The label of the chosen answer",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "A short explanation of why this answer was chosen",
			},
		},
		"required":             []string{"question", "choice", "reason"},
		"additionalProperties": false,
	},
}

// SchemaJSON returns DecisionSchema serialized as JSON.
func SchemaJSON() json.RawMessage {
	b, err := json.Marshal(DecisionSchema)
	if err != nil {
		// DecisionSchema is a static literal.
		panic(fmt.Sprintf("quiz: marshal decision schema: %v", err))
	}
	return b
}

// innerSchemaJSON returns only the "schema" member, for prompts.
func innerSchemaJSON() []byte {
	b, err := json.MarshalIndent(DecisionSchema["schema"], "", "  ")
	if err != nil {
		panic(fmt.Sprintf("quiz: marshal decision schema: %v", err))
	}
	return b
}

// FormatInstructions describes the required output shape for the answer prompt.
func FormatInstructions() string {
	return fmt.Sprintf(`The output must be a single JSON object that conforms to the JSON schema below.
Do not add any fields that are not in the schema. The "choice" field must be exactly one of: %s.

Here is the output schema:
`+"```"+`
%s
`+"```", LabelSetString(), innerSchemaJSON())
}
