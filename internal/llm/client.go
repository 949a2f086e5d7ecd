// ABOUTME: Completion client for the hosted text-generation service.
// ABOUTME: Wraps the OpenAI API behind a small interface for prompt completion.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is used when the config doesn't name one.
const DefaultModel = "gpt-4o"

// DefaultMaxTokens bounds one generation response.
const DefaultMaxTokens = 1024

// ErrNoAPIKey is returned when no generation credential is configured.
var ErrNoAPIKey = errors.New("no API key configured - run 'remix setup' or set OPENAI_API_KEY")

// Client produces raw completion text for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAI is the hosted-service implementation of Client. It sends one request
// per Complete call with a single user-role message.
type OpenAI struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAI creates a completion client. Extra request options (such as a test
// server base URL) are passed through to the underlying client.
func NewOpenAI(apiKey, model string, maxTokens int64, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client:    openai.NewClient(clientOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends the prompt and returns the first choice's message content.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("completion response contained no text")
	}
	return content, nil
}

// Embed returns a vector embedding for the given text, for saved-post search.
func (c *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: openai.EmbeddingModelTextEmbedding3Small,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}
