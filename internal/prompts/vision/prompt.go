// Package vision holds the prompt for reading a quiz question off a screenshot.
package vision

import (
	_ "embed"

	"github.com/jackzampolin/quizclick/internal/prompts"
)

//go:embed system.tmpl
var systemPrompt string

// SystemPromptKey is the resolver key for the extraction instruction.
const SystemPromptKey = "vision.system"

// SystemPrompt returns the embedded extraction instruction.
func SystemPrompt() string {
	return systemPrompt
}

// RegisterPrompts registers the vision prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Vision system prompt - extracts the question and options from a screenshot",
	})
}
