package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/quizclick/internal/llmcall"
	"github.com/jackzampolin/quizclick/internal/prompts"
	"github.com/jackzampolin/quizclick/internal/prompts/answer"
	"github.com/jackzampolin/quizclick/internal/prompts/vision"
	"github.com/jackzampolin/quizclick/internal/providers"
	"github.com/jackzampolin/quizclick/internal/quiz"
)

func TestVisionExtractor_Request(t *testing.T) {
	client := providers.NewMockClient("  Q?\nA) a\nB) b  ")
	recorder := llmcall.NewRecorder(discardLogger())
	ext := NewVisionExtractor(client, ModelConfig{Model: "qwen-vl-plus", Temperature: 0.1, MaxTokens: 512}, nil, recorder)

	text, err := ext.Extract(context.Background(), CallInfo{RunID: "run-1", Cycle: 4}, Frame(pngMagic))
	require.NoError(t, err)
	assert.Equal(t, ExtractedText("Q?\nA) a\nB) b"), text)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, "qwen-vl-plus", req.Model)
	assert.Equal(t, 0.1, req.Temperature)
	assert.Equal(t, 512, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, vision.SystemPrompt(), req.Messages[0].Content)
	require.Len(t, req.Messages[1].Images, 1)
	assert.Equal(t, pngMagic, req.Messages[1].Images[0])

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llmcall.RoleVision, calls[0].Role)
	assert.Equal(t, 4, calls[0].Cycle)
	assert.Equal(t, "run-1", calls[0].RunID)
	assert.Equal(t, vision.SystemPromptKey, calls[0].PromptKey)
}

func TestVisionExtractor_Failures(t *testing.T) {
	t.Run("empty response", func(t *testing.T) {
		ext := NewVisionExtractor(providers.NewMockClient("   "), ModelConfig{}, nil, nil)
		_, err := ext.Extract(context.Background(), CallInfo{Cycle: 1}, Frame(pngMagic))
		assert.ErrorIs(t, err, quiz.ErrInference)
	})

	t.Run("client error", func(t *testing.T) {
		client := providers.NewMockClient()
		client.ShouldFail = true
		recorder := llmcall.NewRecorder(discardLogger())
		ext := NewVisionExtractor(client, ModelConfig{}, nil, recorder)

		_, err := ext.Extract(context.Background(), CallInfo{Cycle: 1}, Frame(pngMagic))
		assert.ErrorIs(t, err, quiz.ErrInference)
		assert.Equal(t, 1, recorder.Summary().Failed)
	})

	t.Run("empty frame", func(t *testing.T) {
		client := providers.NewMockClient("x")
		ext := NewVisionExtractor(client, ModelConfig{}, nil, nil)
		_, err := ext.Extract(context.Background(), CallInfo{Cycle: 1}, nil)
		assert.ErrorIs(t, err, quiz.ErrCapture)
		assert.Equal(t, 0, client.RequestCount())
	})
}

func TestVisionExtractor_PromptOverride(t *testing.T) {
	resolver := prompts.NewResolver(map[string]string{
		vision.SystemPromptKey: "Lies die Frage und alle Antworten aus dem Bild.",
	}, discardLogger())
	vision.RegisterPrompts(resolver)

	client := providers.NewMockClient("Frage")
	ext := NewVisionExtractor(client, ModelConfig{}, resolver, nil)
	_, err := ext.Extract(context.Background(), CallInfo{Cycle: 1}, Frame(pngMagic))
	require.NoError(t, err)

	assert.Equal(t, "Lies die Frage und alle Antworten aus dem Bild.", client.Requests()[0].Messages[0].Content)
}

func TestAnswerSelector_Prompt(t *testing.T) {
	client := providers.NewMockClient("```json\n{\"question\":\"Q\",\"choice\":\"B\",\"reason\":\"because\"}\n```")
	sel, err := NewAnswerSelector(client, ModelConfig{Model: "qwen-plus", Temperature: 0.1}, nil, nil)
	require.NoError(t, err)

	d, err := sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q\nA) a\nB) b")
	require.NoError(t, err)
	assert.Equal(t, &quiz.Decision{Question: "Q", Label: quiz.LabelB, Reason: "because"}, d)

	req := client.Requests()[0]
	require.Len(t, req.Messages, 1)
	content := req.Messages[0].Content
	assert.Contains(t, content, "Q\nA) a\nB) b")
	assert.Contains(t, content, `"additionalProperties": false`)
	assert.True(t, strings.Contains(content, quiz.LabelSetString()))
	assert.Nil(t, req.ResponseFormat)
}

func TestAnswerSelector_ResponseFormat(t *testing.T) {
	reply := `{"question":"Q","choice":"D","reason":"r"}`

	client := providers.NewMockClient(reply)
	sel, err := NewAnswerSelector(client, ModelConfig{ResponseFormat: providers.ResponseFormatJSONSchema}, nil, nil)
	require.NoError(t, err)
	_, err = sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q")
	require.NoError(t, err)

	rf := client.Requests()[0].ResponseFormat
	require.NotNil(t, rf)
	assert.Equal(t, providers.ResponseFormatJSONSchema, rf.Type)
	var wrapper map[string]any
	require.NoError(t, json.Unmarshal(rf.JSONSchema, &wrapper))
	assert.Equal(t, quiz.SchemaName, wrapper["name"])

	client = providers.NewMockClient(reply)
	sel, err = NewAnswerSelector(client, ModelConfig{ResponseFormat: providers.ResponseFormatJSONObject}, nil, nil)
	require.NoError(t, err)
	_, err = sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q")
	require.NoError(t, err)
	assert.Equal(t, providers.ResponseFormatJSONObject, client.Requests()[0].ResponseFormat.Type)

	_, err = NewAnswerSelector(client, ModelConfig{ResponseFormat: "xml"}, nil, nil)
	assert.Error(t, err)
}

func TestAnswerSelector_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "label outside set", reply: `{"question":"Q","choice":"E","reason":"r"}`},
		{name: "missing reason", reply: `{"question":"Q","choice":"A"}`},
		{name: "prose", reply: "The answer is A."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := providers.NewMockClient(tt.reply)
			sel, err := NewAnswerSelector(client, ModelConfig{}, nil, nil)
			require.NoError(t, err)
			_, err = sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q")
			assert.ErrorIs(t, err, quiz.ErrSchemaValidation)
			assert.NotErrorIs(t, err, quiz.ErrInference)
			assert.Equal(t, 1, client.RequestCount())
		})
	}

	t.Run("client error", func(t *testing.T) {
		client := providers.NewMockClient()
		client.ShouldFail = true
		sel, err := NewAnswerSelector(client, ModelConfig{}, nil, nil)
		require.NoError(t, err)
		_, err = sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q")
		assert.ErrorIs(t, err, quiz.ErrInference)
	})
}

func TestAnswerSelector_PromptOverrideMissingVariable(t *testing.T) {
	resolver := prompts.NewResolver(map[string]string{
		answer.UserPromptKey: "Answer: {{.Missing}}",
	}, discardLogger())
	answer.RegisterPrompts(resolver)

	client := providers.NewMockClient(`{"question":"Q","choice":"A","reason":"r"}`)
	sel, err := NewAnswerSelector(client, ModelConfig{}, resolver, nil)
	require.NoError(t, err)

	_, err = sel.Select(context.Background(), CallInfo{Cycle: 1}, "Q")
	assert.Error(t, err)
	assert.Equal(t, 0, client.RequestCount())
}
