package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"walletwatcher/internal/log"
)

// OpenAIConfig points the generator at any OpenAI compatible endpoint,
// including a local Ollama server under /v1.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator streams chat completions.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

func NewOpenAIGenerator(cfg OpenAIConfig, logger *log.Logger) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.WithComponent(log.ComponentAssistant),
	}
}

func (g *OpenAIGenerator) Stream(ctx context.Context, prompt string, onChunk func(string)) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	stream, err := g.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return fmt.Errorf("start completion stream: %w", err)
	}
	defer stream.Close()

	chunks := 0
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("receive completion: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		chunks++
		onChunk(resp.Choices[0].Delta.Content)
	}

	g.logger.DebugContext(ctx, "Completion streamed",
		log.FieldModel, g.model,
		log.FieldCount, chunks,
		log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}
