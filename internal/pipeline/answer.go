package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jackzampolin/quizclick/internal/llmcall"
	"github.com/jackzampolin/quizclick/internal/prompts"
	"github.com/jackzampolin/quizclick/internal/prompts/answer"
	"github.com/jackzampolin/quizclick/internal/providers"
	"github.com/jackzampolin/quizclick/internal/quiz"
)

// AnswerSelector asks a text model to choose a label and validates the reply.
type AnswerSelector struct {
	client   providers.LLMClient
	cfg      ModelConfig
	prompts  *prompts.Resolver
	recorder *llmcall.Recorder
}

// NewAnswerSelector creates a selector. resolver and recorder may be nil.
func NewAnswerSelector(client providers.LLMClient, cfg ModelConfig, resolver *prompts.Resolver, recorder *llmcall.Recorder) (*AnswerSelector, error) {
	switch cfg.ResponseFormat {
	case "", providers.ResponseFormatJSONObject, providers.ResponseFormatJSONSchema:
	default:
		return nil, fmt.Errorf("unknown response format %q", cfg.ResponseFormat)
	}
	return &AnswerSelector{
		client:   client,
		cfg:      cfg,
		prompts:  resolver,
		recorder: recorder,
	}, nil
}

// Select makes one answer call and parses the reply into a Decision.
// Transport failures wrap quiz.ErrInference; anything that is not a valid
// decision wraps quiz.ErrSchemaValidation.
func (s *AnswerSelector) Select(ctx context.Context, info CallInfo, text ExtractedText) (*quiz.Decision, error) {
	prompt, err := resolvePrompt(s.prompts, answer.UserPromptKey, answer.UserPromptTemplate())
	if err != nil {
		return nil, err
	}
	content, err := answer.UserPrompt(prompt.Text, answer.NewUserPromptData(string(text)))
	if err != nil {
		return nil, err
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "user", Content: content},
		},
		Model:          s.cfg.Model,
		Temperature:    s.cfg.Temperature,
		MaxTokens:      s.cfg.MaxTokens,
		Timeout:        s.cfg.Timeout,
		ResponseFormat: s.responseFormat(),
		RequestID:      uuid.New().String(),
	}

	result, err := s.client.Chat(ctx, req)
	s.recorder.Record(result, recordOptions(info, llmcall.RoleAnswer, prompt, s.cfg.Temperature))
	if err != nil {
		return nil, fmt.Errorf("%w: answer call: %v", quiz.ErrInference, err)
	}

	return quiz.ParseDecision(result.Content)
}

func (s *AnswerSelector) responseFormat() *providers.ResponseFormat {
	switch s.cfg.ResponseFormat {
	case providers.ResponseFormatJSONObject:
		return &providers.ResponseFormat{Type: providers.ResponseFormatJSONObject}
	case providers.ResponseFormatJSONSchema:
		return &providers.ResponseFormat{
			Type:       providers.ResponseFormatJSONSchema,
			JSONSchema: quiz.SchemaJSON(),
		}
	default:
		return nil
	}
}

var _ Selector = (*AnswerSelector)(nil)
