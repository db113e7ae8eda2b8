// Package answer holds the prompt that asks the text model to pick a label.
package answer

import (
	_ "embed"

	"github.com/jackzampolin/quizclick/internal/prompts"
	"github.com/jackzampolin/quizclick/internal/quiz"
)

//go:embed user.tmpl
var userPromptTmpl string

// UserPromptKey is the resolver key for the answer prompt template.
const UserPromptKey = "answer.user"

// UserPromptData holds the template variables for the answer prompt.
type UserPromptData struct {
	Question           string
	FormatInstructions string
}

// NewUserPromptData fills in the format instructions for the decision schema.
func NewUserPromptData(question string) UserPromptData {
	return UserPromptData{
		Question:           question,
		FormatInstructions: quiz.FormatInstructions(),
	}
}

// UserPromptTemplate returns the embedded template text.
func UserPromptTemplate() string {
	return userPromptTmpl
}

// UserPrompt renders tmpl (the embedded template when empty) with data.
func UserPrompt(tmpl string, data UserPromptData) (string, error) {
	if tmpl == "" {
		tmpl = userPromptTmpl
	}
	return prompts.Render(UserPromptKey, tmpl, data)
}

// RegisterPrompts registers the answer prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Answer user prompt template - question text plus output schema",
	})
}
