package services

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// assistantPreamble is prepended to every question. Calls are independent:
// no conversation state is kept between them.
const assistantPreamble = `You are "RescueAI", a certified disaster response assistant specializing in:
- Floods
- Earthquakes
- Heatwaves
- Landslides

Guidelines:
1. Provide step-by-step emergency instructions
2. Recommend official resources (NDMA Pakistan, WHO)
3. Use simple language with bullet points
4. For life-threatening situations, start with "EMERGENCY:"
5. Ask clarifying questions when needed`

const (
	// FallbackReply is returned when the completion response has no usable text.
	FallbackReply = "Sorry, I couldn't process that request."
	// SafetyReply is returned on any transport failure, including timeout.
	SafetyReply = "System error. For emergencies, call 1122 (Pakistan Emergency Services)."
)

// ChatCompleter is the slice of the OpenAI-compatible client the assistant uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Assistant relays emergency questions to an external chat-completion service.
type Assistant struct {
	client  ChatCompleter
	model   string
	timeout time.Duration
}

// NewAssistant builds an assistant against an OpenAI-compatible endpoint.
// baseURL may be empty for the default endpoint.
func NewAssistant(apiKey, baseURL, model string) *Assistant {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Assistant{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: 30 * time.Second,
	}
}

// NewAssistantWithClient is used by tests to substitute the completion client.
func NewAssistantWithClient(client ChatCompleter, model string, timeout time.Duration) *Assistant {
	return &Assistant{client: client, model: model, timeout: timeout}
}

// Ask forwards the question with the fixed preamble and returns the reply
// text. It never returns an error to the caller: transport failures collapse
// to SafetyReply and unusable responses to FallbackReply.
func (a *Assistant) Ask(ctx context.Context, question string) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantPreamble},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		logrus.WithError(err).Error("assistant completion failed")
		return SafetyReply
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return FallbackReply
	}
	return resp.Choices[0].Message.Content
}
