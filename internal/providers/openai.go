package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"golang.org/x/time/rate"
)

const (
	OpenAIName = "openai"

	// DashScopeBaseURL is the OpenAI-compatible endpoint the defaults target.
	DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
)

// OpenAIConfig holds configuration for an OpenAI-compatible chat client.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string        // Defaults to DashScopeBaseURL
	DefaultModel string        // Used when ChatRequest.Model is empty
	Timeout      time.Duration // HTTP client timeout, 0 = no client timeout
	MaxRetries   int           // SDK transport retries, 0 = fail fast
	// RequestsPerMinute gates outbound calls. 0 disables the limiter.
	RequestsPerMinute float64
	HTTPClient        *http.Client // Optional (tests)
}

// OpenAIClient implements LLMClient using the official OpenAI SDK.
type OpenAIClient struct {
	baseURL      string
	defaultModel string
	limiter      *rate.Limiter
	client       openai.Client
}

// NewOpenAIClient creates a new OpenAI-compatible chat client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DashScopeBaseURL
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), 1)
	}

	return &OpenAIClient{
		baseURL:      cfg.BaseURL,
		defaultModel: cfg.DefaultModel,
		limiter:      limiter,
		client:       client,
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// BaseURL returns the endpoint the client talks to.
func (c *OpenAIClient) BaseURL() string {
	return c.baseURL
}

// Chat sends a chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	result := &ChatResult{
		RequestID: requestID,
		Provider:  OpenAIName,
		ModelUsed: model,
	}
	fail := func(errType string, err error) (*ChatResult, error) {
		result.Success = false
		result.ErrorType = errType
		result.ErrorMessage = err.Error()
		result.TotalTime = time.Since(start)
		return result, err
	}

	params, err := buildChatParams(model, req)
	if err != nil {
		return fail("request_build", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail("rate_limit_wait", err)
		}
	}
	result.QueueTime = time.Since(start)

	var opts []option.RequestOption
	if req.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(req.Timeout))
	}

	execStart := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, params, opts...)
	result.ExecutionTime = time.Since(execStart)
	if err != nil {
		return fail("http_error", mapOpenAIError(err))
	}

	if len(completion.Choices) == 0 {
		return fail("empty_response", fmt.Errorf("%w: no choices in response", ErrEmptyResponse))
	}

	choice := completion.Choices[0]
	result.Content = choice.Message.Content
	result.FinishReason = string(choice.FinishReason)
	if completion.Model != "" {
		result.ModelUsed = completion.Model
	}
	result.PromptTokens = int(completion.Usage.PromptTokens)
	result.CompletionTokens = int(completion.Usage.CompletionTokens)
	result.TotalTokens = int(completion.Usage.TotalTokens)

	if strings.TrimSpace(result.Content) == "" {
		return fail("empty_response", fmt.Errorf("%w: no content (finish_reason=%s)", ErrEmptyResponse, result.FinishReason))
	}

	result.Success = true
	result.TotalTime = time.Since(start)
	return result, nil
}

// ListModels returns the model ids exposed by the endpoint.
// Used as a credential and reachability check.
func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("models list failed: %w", mapOpenAIError(err))
	}
	if page == nil {
		return nil, fmt.Errorf("models list returned nil response")
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func buildChatParams(model string, req *ChatRequest) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		case "user", "":
			if len(m.Images) == 0 {
				params.Messages = append(params.Messages, openai.UserMessage(m.Content))
				continue
			}
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(m.Images)+1)
			for _, img := range m.Images {
				parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: ImageDataURL(img),
				}))
			}
			if m.Content != "" {
				parts = append(parts, openai.TextContentPart(m.Content))
			}
			params.Messages = append(params.Messages, openai.UserMessage(parts))
		default:
			return params, fmt.Errorf("unsupported message role %q", m.Role)
		}
	}

	if rf := req.ResponseFormat; rf != nil {
		switch rf.Type {
		case ResponseFormatJSONObject:
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			}
		case ResponseFormatJSONSchema:
			var wrapper struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			}
			if err := json.Unmarshal(rf.JSONSchema, &wrapper); err != nil {
				return params, fmt.Errorf("invalid json_schema response format: %w", err)
			}
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
					JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
						Name:   wrapper.Name,
						Schema: wrapper.Schema,
						Strict: openai.Bool(wrapper.Strict),
					},
				},
			}
		default:
			return params, fmt.Errorf("unsupported response format %q", rf.Type)
		}
	}

	return params, nil
}

// ImageDataURL encodes image bytes as a data URL, sniffing the MIME type.
func ImageDataURL(img []byte) string {
	mime := http.DetectContentType(img)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)
}

// Verify interface
var _ LLMClient = (*OpenAIClient)(nil)
