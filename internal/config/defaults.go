package config

import (
	"strings"

	"github.com/jackzampolin/quizclick/internal/providers"
)

// Entry is a single config key with its default value.
type Entry struct {
	Key         string
	Value       any
	Description string
}

// APIKeyEnvVar is the environment variable the default api_key references.
const APIKeyEnvVar = "DASHSCOPE_API_KEY"

// DefaultEntries returns the default configuration entries.
// These seed viper's defaults and the file written by WriteDefault.
func DefaultEntries() []Entry {
	return []Entry{
		// ===================
		// Provider
		// ===================
		{
			Key:         "provider.base_url",
			Value:       providers.DashScopeBaseURL,
			Description: "OpenAI-compatible endpoint used by both roles",
		},
		{
			Key:         "provider.api_key",
			Value:       "${" + APIKeyEnvVar + "}",
			Description: "API key (uses environment variable)",
		},
		{
			Key:         "provider.requests_per_minute",
			Value:       0,
			Description: "Client-side rate limit; 0 disables it",
		},

		// ===================
		// Models
		// ===================
		{
			Key:         "vision.model",
			Value:       "qwen-vl-plus",
			Description: "Image-understanding model that reads the question",
		},
		{
			Key:         "vision.temperature",
			Value:       0.1,
			Description: "Sampling temperature for the vision call",
		},
		{
			Key:         "vision.max_tokens",
			Value:       0,
			Description: "Max tokens for the vision call; 0 uses the provider default",
		},
		{
			Key:         "vision.timeout",
			Value:       "0s",
			Description: "Per-request timeout for the vision call; 0 uses the client default",
		},
		{
			Key:         "answer.model",
			Value:       "qwen-plus",
			Description: "Text model that picks the answer",
		},
		{
			Key:         "answer.temperature",
			Value:       0.1,
			Description: "Sampling temperature for the answer call",
		},
		{
			Key:         "answer.max_tokens",
			Value:       0,
			Description: "Max tokens for the answer call; 0 uses the provider default",
		},
		{
			Key:         "answer.timeout",
			Value:       "60s",
			Description: "Per-request timeout for the answer call",
		},
		{
			Key:         "answer.response_format",
			Value:       "",
			Description: "Native structured output: empty (prompt only), json_object or json_schema",
		},

		// ===================
		// Screen
		// ===================
		{Key: "screen.region.left", Value: 10, Description: "Capture region left edge"},
		{Key: "screen.region.top", Value: 150, Description: "Capture region top edge"},
		{Key: "screen.region.right", Value: 310, Description: "Capture region right edge (exclusive)"},
		{Key: "screen.region.bottom", Value: 650, Description: "Capture region bottom edge (exclusive)"},
		{Key: "screen.activation.x", Value: 100, Description: "Click that focuses the quiz window before the loop"},
		{Key: "screen.activation.y", Value: 150, Description: "Click that focuses the quiz window before the loop"},
		{Key: "screen.coordinates.a.x", Value: 270, Description: "Click target for answer A"},
		{Key: "screen.coordinates.a.y", Value: 320, Description: "Click target for answer A"},
		{Key: "screen.coordinates.b.x", Value: 270, Description: "Click target for answer B"},
		{Key: "screen.coordinates.b.y", Value: 370, Description: "Click target for answer B"},
		{Key: "screen.coordinates.c.x", Value: 270, Description: "Click target for answer C"},
		{Key: "screen.coordinates.c.y", Value: 420, Description: "Click target for answer C"},
		{Key: "screen.coordinates.d.x", Value: 270, Description: "Click target for answer D"},
		{Key: "screen.coordinates.d.y", Value: 470, Description: "Click target for answer D"},

		// ===================
		// Loop
		// ===================
		{
			Key:         "loop.max_cycles",
			Value:       100,
			Description: "Number of questions to answer",
		},
		{
			Key:         "loop.pace",
			Value:       "300ms",
			Description: "Pause after each answer click",
		},
		{
			Key:         "loop.inference_attempts",
			Value:       1,
			Description: "Attempts per inference call; 1 fails fast, schema failures are never retried",
		},
		{
			Key:         "loop.retry_delay",
			Value:       "1s",
			Description: "Fixed delay between inference attempts",
		},

		// ===================
		// Logging
		// ===================
		{
			Key:         "log.level",
			Value:       "info",
			Description: "Log level: debug, info, warn, error",
		},
	}
}

// defaultTree nests the dotted default keys into maps for the config file.
func defaultTree() map[string]any {
	root := make(map[string]any)
	for _, entry := range DefaultEntries() {
		parts := strings.Split(entry.Key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = entry.Value
	}
	return root
}
