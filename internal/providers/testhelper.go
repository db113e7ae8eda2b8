package providers

import (
	"os"
)

// TestConfig holds live-endpoint settings loaded from environment variables.
// This allows integration tests to use the same configuration pattern as production.
type TestConfig struct {
	APIKey      string
	BaseURL     string
	VisionModel string
	AnswerModel string
}

// LoadTestConfig loads the endpoint settings from environment variables.
// Unset models fall back to the production defaults.
func LoadTestConfig() TestConfig {
	cfg := TestConfig{
		APIKey:      os.Getenv("DASHSCOPE_API_KEY"),
		BaseURL:     os.Getenv("QUIZCLICK_PROVIDER_BASE_URL"),
		VisionModel: os.Getenv("QUIZCLICK_VISION_MODEL"),
		AnswerModel: os.Getenv("QUIZCLICK_ANSWER_MODEL"),
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = "qwen-vl-plus"
	}
	if cfg.AnswerModel == "" {
		cfg.AnswerModel = "qwen-plus"
	}
	return cfg
}

// HasEndpoint returns true if an API key is configured.
func (c TestConfig) HasEndpoint() bool {
	return c.APIKey != ""
}

// NewClient creates a client from test config.
// Returns nil if not configured.
func (c TestConfig) NewClient() *OpenAIClient {
	if !c.HasEndpoint() {
		return nil
	}
	return NewOpenAIClient(OpenAIConfig{
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		DefaultModel: c.AnswerModel,
	})
}
