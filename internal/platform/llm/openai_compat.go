package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultPerplexityURL = "https://api.perplexity.ai"

// OpenAICompatibleConfig targets any chat-completions endpoint (Perplexity by default).
type OpenAICompatibleConfig struct {
	Name        string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

type OpenAICompatible struct {
	cfg    OpenAICompatibleConfig
	client *openai.Client
}

// NewOpenAICompatible returns nil when no API key is set.
func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if cfg.Name == "" {
		cfg.Name = "perplexity"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPerplexityURL
	}
	if cfg.Model == "" {
		cfg.Model = "sonar-pro"
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &OpenAICompatible{cfg: cfg, client: openai.NewClientWithConfig(oc)}
}

func (o *OpenAICompatible) Name() string { return o.cfg.Name }

func (o *OpenAICompatible) Generate(ctx context.Context, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	creq := openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Messages:    msgs,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}
	if req.Temperature > 0 {
		creq.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		creq.MaxTokens = req.MaxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(o.cfg.Name + ": no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

const defaultEmbedHTTPTimeout = 10 * time.Second

type OpenAIEmbedderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds each HTTP request; zero selects 10s.
	Timeout time.Duration
}

type OpenAIEmbedder struct {
	model  openai.EmbeddingModel
	client *openai.Client
}

// NewOpenAIEmbedder returns nil when no API key is set.
func NewOpenAIEmbedder(cfg OpenAIEmbedderConfig) *OpenAIEmbedder {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEmbedHTTPTimeout
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}
	return &OpenAIEmbedder{model: model, client: openai.NewClientWithConfig(oc)}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("embed: empty input")
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embed: empty vector")
	}
	return resp.Data[0].Embedding, nil
}
