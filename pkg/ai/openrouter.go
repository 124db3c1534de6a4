package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"amdchat/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

// OpenRouterProvider implements the Provider interface using the OpenRouter API.
type OpenRouterProvider struct {
	client       openai.Client
	defaultModel string
}

// NewOpenRouterProvider creates a new OpenRouter provider from config.
func NewOpenRouterProvider(cfg config.OpenRouterConfig) (*OpenRouterProvider, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	return newOpenRouterProviderWithHTTPClient(cfg, httpClient)
}

func newOpenRouterProviderWithHTTPClient(cfg config.OpenRouterConfig, httpClient *http.Client) (*OpenRouterProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openrouter api_key is required")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("openrouter api_url is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("openrouter api_timeout_seconds must be positive")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIURL),
		// Failures are reported to the user, who decides whether to resend.
		option.WithMaxRetries(0),
	}

	if strings.TrimSpace(cfg.HTTPReferer) != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.HTTPReferer))
	}
	if strings.TrimSpace(cfg.XTitle) != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.XTitle))
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}
	opts = append(opts, option.WithHTTPClient(httpClient))

	return &OpenRouterProvider{
		client:       openai.NewClient(opts...),
		defaultModel: cfg.Model,
	}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *OpenRouterProvider) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	params, err := p.buildChatParams(req)
	if err != nil {
		return ChatResponse{}, err
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ChatResponse{}, err
	}

	if len(resp.Choices) == 0 {
		// OpenRouter reports some upstream failures as a 200 with an error body.
		if message := gjson.Get(resp.RawJSON(), "error.message").String(); message != "" {
			return ChatResponse{}, fmt.Errorf("%w: %s", ErrNoChoices, message)
		}
		return ChatResponse{}, ErrNoChoices
	}

	msg := resp.Choices[0].Message
	return ChatResponse{
		Model:   resp.Model,
		Content: msg.Content,
		// reasoning is an OpenRouter extension the SDK does not model
		Reasoning: gjson.Get(msg.RawJSON(), "reasoning").String(),
	}, nil
}

func (p *OpenRouterProvider) buildChatParams(req ChatRequest) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = p.defaultModel
	}
	if model == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}, nil
}

func toChatMessageParam(msg Message) (openai.ChatCompletionMessageParamUnion, error) {
	role := strings.ToLower(strings.TrimSpace(msg.Role))
	switch role {
	case "system":
		return openai.SystemMessage(msg.Content), nil
	case "user":
		return openai.UserMessage(msg.Content), nil
	case "assistant":
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}
