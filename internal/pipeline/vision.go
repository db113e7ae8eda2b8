package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/quizclick/internal/llmcall"
	"github.com/jackzampolin/quizclick/internal/prompts"
	"github.com/jackzampolin/quizclick/internal/prompts/vision"
	"github.com/jackzampolin/quizclick/internal/providers"
	"github.com/jackzampolin/quizclick/internal/quiz"
)

// ModelConfig holds the per-role model settings.
type ModelConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration

	// ResponseFormat is "", json_object or json_schema. Only the answer role uses it.
	ResponseFormat string
}

// VisionExtractor sends the frame to an image-understanding model and
// returns whatever text comes back.
type VisionExtractor struct {
	client   providers.LLMClient
	cfg      ModelConfig
	prompts  *prompts.Resolver
	recorder *llmcall.Recorder
}

// NewVisionExtractor creates an extractor. resolver and recorder may be nil.
func NewVisionExtractor(client providers.LLMClient, cfg ModelConfig, resolver *prompts.Resolver, recorder *llmcall.Recorder) *VisionExtractor {
	return &VisionExtractor{
		client:   client,
		cfg:      cfg,
		prompts:  resolver,
		recorder: recorder,
	}
}

// Extract makes one vision call. Every failure wraps quiz.ErrInference.
func (e *VisionExtractor) Extract(ctx context.Context, info CallInfo, frame Frame) (ExtractedText, error) {
	if len(frame) == 0 {
		return "", fmt.Errorf("%w: empty frame", quiz.ErrCapture)
	}

	prompt, err := resolvePrompt(e.prompts, vision.SystemPromptKey, vision.SystemPrompt())
	if err != nil {
		return "", err
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: prompt.Text},
			{Role: "user", Images: [][]byte{frame}},
		},
		Model:       e.cfg.Model,
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
		Timeout:     e.cfg.Timeout,
		RequestID:   uuid.New().String(),
	}

	result, err := e.client.Chat(ctx, req)
	e.recorder.Record(result, recordOptions(info, llmcall.RoleVision, prompt, e.cfg.Temperature))
	if err != nil {
		return "", fmt.Errorf("%w: vision call: %v", quiz.ErrInference, err)
	}

	text := strings.TrimSpace(result.Content)
	if text == "" {
		return "", fmt.Errorf("%w: vision call: empty response", quiz.ErrInference)
	}
	return ExtractedText(text), nil
}

// resolvePrompt looks key up in resolver, falling back to the embedded text.
func resolvePrompt(resolver *prompts.Resolver, key, embedded string) (*prompts.ResolvedPrompt, error) {
	if resolver == nil {
		return &prompts.ResolvedPrompt{
			Key:       key,
			Text:      embedded,
			Variables: prompts.ExtractVariables(embedded),
			Hash:      prompts.HashText(embedded),
		}, nil
	}
	p, err := resolver.Resolve(key)
	if err != nil {
		return nil, fmt.Errorf("resolve prompt: %w", err)
	}
	return p, nil
}

func recordOptions(info CallInfo, role string, prompt *prompts.ResolvedPrompt, temperature float64) llmcall.RecordOptions {
	return llmcall.RecordOptions{
		RunID:       info.RunID,
		Cycle:       info.Cycle,
		Role:        role,
		PromptKey:   prompt.Key,
		PromptHash:  prompt.Hash,
		Temperature: &temperature,
	}
}

var _ Extractor = (*VisionExtractor)(nil)
