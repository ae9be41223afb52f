// Package chat proxies storefront support conversations to a hosted
// chat-completion model. The service degrades to disabled when no API key
// is configured, so the rest of the backend does not depend on it.
package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"storefront-backend/internal/models"
)

const systemPrompt = "You are a helpful assistant for an online storefront. " +
	"Answer questions about products, orders, shipping and returns. " +
	"Keep replies short and do not invent order details."

type Service struct {
	client  *openai.Client
	model   string
	enabled bool
}

func NewService(apiKey, baseURL, model string) *Service {
	if apiKey == "" {
		log.Println("Chat service disabled - no API key provided")
		return &Service{}
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	log.Println("Chat service initialized")
	return &Service{client: &client, model: model, enabled: true}
}

func (s *Service) Enabled() bool {
	return s.enabled
}

// Reply sends the message plus prior history and returns the model's
// answer.
func (s *Service) Reply(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("chat service is not enabled")
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(s.model),
		Messages:    messages,
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}
