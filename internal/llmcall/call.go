// Package llmcall records inference calls made during a run.
// Records live in memory only and feed the end-of-run summary.
package llmcall

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/quizclick/internal/providers"
)

// Roles of the two inference calls in a cycle.
const (
	RoleVision = "vision"
	RoleAnswer = "answer"
)

// Call represents a recorded LLM API call.
type Call struct {
	ID string `json:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Context references
	RunID string `json:"run_id,omitempty"`
	Cycle int    `json:"cycle"`
	Role  string `json:"role"`

	// Prompt traceability
	PromptKey  string `json:"prompt_key"`
	PromptHash string `json:"prompt_hash,omitempty"`

	// Model info
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`

	// Token usage
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	// Response
	Response string `json:"response"`

	// Status
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RecordOptions provides context for recording an LLM call.
type RecordOptions struct {
	RunID string
	Cycle int
	Role  string

	PromptKey  string
	PromptHash string

	// Pointer to distinguish "not set" from "set to 0"
	Temperature *float64
}

// FromChatResult creates a Call from a ChatResult.
// Returns nil if result is nil.
func FromChatResult(result *providers.ChatResult, opts RecordOptions) *Call {
	if result == nil {
		return nil
	}

	call := &Call{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		LatencyMs:    int(result.TotalTime.Milliseconds()),
		RunID:        opts.RunID,
		Cycle:        opts.Cycle,
		Role:         opts.Role,
		PromptKey:    opts.PromptKey,
		PromptHash:   opts.PromptHash,
		Provider:     result.Provider,
		Model:        result.ModelUsed,
		Temperature:  opts.Temperature,
		InputTokens:  result.PromptTokens,
		OutputTokens: result.CompletionTokens,
		Response:     result.Content,
		Success:      result.Success,
	}

	if !result.Success {
		call.Error = result.ErrorMessage
	}

	return call
}
