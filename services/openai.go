package services

import (
	"context"
	"errors"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"hippo/models"
)

var ErrCompletionNotConfigured = errors.New("OPENAI_API_KEY is not configured on the server")

// CompletionClient wraps the OpenAI chat completions API. The prompt
// scaffolding (system prompt, trip context, live-data context) is assembled
// here; the caller only decides what grounding data to pass in.
type CompletionClient struct {
	client     openai.Client
	model      string
	configured bool
	log        *zap.Logger
}

func NewCompletionClient(log *zap.Logger) *CompletionClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-5.1"
	}

	if apiKey == "" {
		log.Warn("OPENAI_API_KEY not set, chat completions are disabled")
	}

	return &CompletionClient{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:      model,
		configured: apiKey != "",
		log:        log,
	}
}

func (c *CompletionClient) Configured() bool {
	return c.configured
}

// Complete generates the assistant's reply for a conversation. liveData, when
// non-empty, is injected as an extra system message labeled according to the
// mode so the model knows whether it is looking at structured live prices or
// loose web context.
func (c *CompletionClient) Complete(ctx context.Context, mode models.Mode, systemPrompt, tripContext, liveData string, history []models.Message) (string, error) {
	if !c.configured {
		return "", ErrCompletionNotConfigured
	}

	if tripContext == "" {
		tripContext = "User has not provided a structured trip context."
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+3)
	messages = append(messages,
		openai.SystemMessage(systemPrompt),
		openai.SystemMessage("Trip context (origin, dates, theme, budget): "+tripContext),
	)
	if liveData != "" {
		label := "Recent web-based estimated ranges and context: "
		if mode == models.ModeLivePrices {
			label = "Structured live price data (JSON for each destination): "
		}
		messages = append(messages, openai.SystemMessage(label+liveData))
	}
	for _, m := range history {
		switch m.Role {
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		case models.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0.4),
		Messages:    messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
