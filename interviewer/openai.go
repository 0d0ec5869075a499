package interviewer

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	turnMaxTokens       = 80
	evaluationMaxTokens = 100
)

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenAI) NextTurn(ctx context.Context, answer, question string, role Role) (string, error) {
	return o.complete(ctx, turnPrompt(answer, question, role), turnMaxTokens)
}

func (o *OpenAI) Evaluate(ctx context.Context, answers []string, role Role) (string, error) {
	return o.complete(ctx, evaluationPrompt(answers, role), evaluationMaxTokens)
}

func (o *OpenAI) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrGeneration
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrGeneration
	}
	return text, nil
}
