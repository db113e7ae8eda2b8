// Package prompts provides prompt management with embedded defaults and
// config-level overrides.
//
// Embedded .tmpl files are the source of truth for defaults. The config file
// may replace any prompt by key (prompts.<key>), which is how an operator
// adapts the instructions to a quiz in another language.
//
// Resolution order:
//  1. Override from config (if non-empty)
//  2. Embedded default (from .tmpl files in code)
package prompts

// ResolvedPrompt is the result of resolving a prompt key.
type ResolvedPrompt struct {
	Key        string   `json:"key"`
	Text       string   `json:"text"`
	Variables  []string `json:"variables,omitempty"`
	IsOverride bool     `json:"is_override"`
	Hash       string   `json:"hash"` // SHA256 of Text, logged with each call
}

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: vision.system
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}
