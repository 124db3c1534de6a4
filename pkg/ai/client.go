package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"amdchat/pkg/config"
	"amdchat/pkg/conversation"
	"amdchat/pkg/format"
	"amdchat/pkg/logging"
)

// DisplayReply is the result of a successful send.
type DisplayReply struct {
	HTML string // formatted for display
	Raw  string // the text stored in the transcript
}

// Client turns one user utterance into one assistant reply.
type Client struct {
	provider      Provider
	formatter     *format.Formatter
	logger        *slog.Logger
	model         string
	timeout       time.Duration
	contextWindow int
	referenceURL  string
}

// NewClient wires a Client from configuration.
func NewClient(provider Provider, cfg config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	referenceURL := strings.TrimSpace(cfg.SupportURL)
	if referenceURL == "" {
		referenceURL = config.DefaultSupportURL
	}
	timeout := time.Duration(cfg.OpenRouter.APITimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultTimeout * time.Second
	}

	return &Client{
		provider:      provider,
		formatter:     format.NewFormatter(logger),
		logger:        logger,
		model:         cfg.OpenRouter.Model,
		timeout:       timeout,
		contextWindow: cfg.ContextWindow,
		referenceURL:  referenceURL,
	}
}

// Send appends userText to the store and performs the exchange.
func (c *Client) Send(ctx context.Context, store *conversation.Store, userText string) (DisplayReply, error) {
	if strings.TrimSpace(userText) == "" {
		return DisplayReply{}, ErrEmptyInput
	}
	if err := store.AppendUser(userText); err != nil {
		return DisplayReply{}, err
	}
	return c.Exchange(ctx, store)
}

// Exchange sends the current transcript, which must already end with the
// user message, and appends the assistant reply on success. On failure the
// store is left untouched and a *NetworkError is returned.
func (c *Client) Exchange(ctx context.Context, store *conversation.Store) (DisplayReply, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: toRequestMessages(store.Window(c.contextWindow)),
	}

	if logging.TraceEnabled(c.logger) {
		c.logger.Log(ctx, logging.LevelTrace, "chat_send_prompt",
			"model", req.Model,
			"messages_full", buildMessageDump(req.Messages),
		)
	}
	c.logger.Info("chat_send_start", "model", req.Model, "message_count", len(req.Messages))

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.provider.CreateChatCompletion(reqCtx, req)
	if err != nil {
		netErr := newNetworkError(err)
		c.logger.Error("chat_send_error",
			"error", err,
			"status_code", netErr.StatusCode,
			"timeout", netErr.Timeout,
			"elapsed", time.Since(start),
		)
		return DisplayReply{}, netErr
	}

	text := resp.Content
	if text == "" {
		text = resp.Reasoning
	}
	if text == "" {
		c.logger.Warn("chat_send_empty_reply", "model", resp.Model)
	}

	text = format.Augment(text, c.referenceURL)
	store.AppendAssistant(text)

	c.logger.Info("chat_send_done",
		"model", resp.Model,
		"reply_length", len(text),
		"elapsed", time.Since(start),
	)

	return DisplayReply{
		HTML: c.formatter.Format(text),
		Raw:  text,
	}, nil
}

func toRequestMessages(messages []conversation.Message) []Message {
	out := make([]Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, Message{Role: string(msg.Role), Content: msg.Content})
	}
	return out
}

func buildMessageDump(messages []Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%d] %s: %s", i, msg.Role, msg.Content))
	}
	return sb.String()
}
