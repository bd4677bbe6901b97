package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is the OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com"
	// DefaultTimeout is long because vision and document calls can take a while
	DefaultTimeout = 120 * time.Second
	// DefaultModel is the chat and vision model
	DefaultModel = sdk.GPT4o
	// DefaultTranscriptionModel is the speech-to-text model
	DefaultTranscriptionModel = sdk.Whisper1
	// DefaultImageModel is the image generation model
	DefaultImageModel = sdk.CreateImageModelDallE3
)

// Message is a chat message. Images travel in MultiContent.
type Message = sdk.ChatCompletionMessage

// ChatResponse is the chat completions response
type ChatResponse = sdk.ChatCompletionResponse

// Choice is one choice of a chat response
type Choice = sdk.ChatCompletionChoice

// Client talks to an OpenAI-compatible API
type Client struct {
	api                *sdk.Client
	baseURL            string
	timeout            time.Duration
	model              string
	transcriptionModel string
	imageModel         string
	limiter            *RateLimiter
}

// Config holds configuration for the client
type Config struct {
	APIKey             string
	BaseURL            string
	Timeout            time.Duration
	Model              string
	TranscriptionModel string
	ImageModel         string
	// RateLimiter paces outbound calls. Nil disables pacing.
	RateLimiter *RateLimiter
}

// NewClient creates a new client, filling unset fields with defaults
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.TranscriptionModel == "" {
		config.TranscriptionModel = DefaultTranscriptionModel
	}
	if config.ImageModel == "" {
		config.ImageModel = DefaultImageModel
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	apiConfig := sdk.DefaultConfig(config.APIKey)
	apiConfig.BaseURL = baseURL + "/v1"
	apiConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &Client{
		api:                sdk.NewClientWithConfig(apiConfig),
		baseURL:            baseURL,
		timeout:            config.Timeout,
		model:              config.Model,
		transcriptionModel: config.TranscriptionModel,
		imageModel:         config.ImageModel,
		limiter:            config.RateLimiter,
	}
}

// StatusCode returns the HTTP status carried by an API error, or 0
func StatusCode(err error) int {
	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *sdk.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// IsRateLimited reports whether err is a 429 from the API
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// TextMessage builds a plain text message
func TextMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}

// ImageMessage builds a user message asking about the image at imageURL
func ImageMessage(prompt, imageURL string) Message {
	return Message{
		Role: sdk.ChatMessageRoleUser,
		MultiContent: []sdk.ChatMessagePart{
			{Type: sdk.ChatMessagePartTypeText, Text: prompt},
			{Type: sdk.ChatMessagePartTypeImageURL, ImageURL: &sdk.ChatMessageImageURL{URL: imageURL}},
		},
	}
}

// Option is a function that modifies the chat request
type Option func(*sdk.ChatCompletionRequest)

// WithTemperature sets the temperature for the request
func WithTemperature(temp float32) Option {
	return func(req *sdk.ChatCompletionRequest) {
		req.Temperature = temp
	}
}

// WithMaxTokens sets the max tokens for the request
func WithMaxTokens(tokens int) Option {
	return func(req *sdk.ChatCompletionRequest) {
		req.MaxTokens = tokens
	}
}

// WithModel sets a different model for the request
func WithModel(model string) Option {
	return func(req *sdk.ChatCompletionRequest) {
		req.Model = model
	}
}

// ChatCompletion sends a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, options ...Option) (*ChatResponse, error) {
	req := sdk.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	for _, opt := range options {
		opt(&req)
	}

	var resp sdk.ChatCompletionResponse
	err := c.call(ctx, func() error {
		var err error
		resp, err = c.api.CreateChatCompletion(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices returned from chat completion")
	}
	return &resp, nil
}

// TranscriptionOption customizes a transcription request
type TranscriptionOption func(*sdk.AudioRequest)

// WithLanguage sets the spoken language hint
func WithLanguage(language string) TranscriptionOption {
	return func(req *sdk.AudioRequest) {
		req.Language = language
	}
}

// Transcribe converts audio to text
func (c *Client) Transcribe(ctx context.Context, audio []byte, fileName string, options ...TranscriptionOption) (string, error) {
	if fileName == "" {
		fileName = "audio.mp3"
	}
	req := sdk.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: fileName,
		Reader:   bytes.NewReader(audio),
		Language: "en",
	}
	for _, opt := range options {
		opt(&req)
	}

	var resp sdk.AudioResponse
	err := c.call(ctx, func() error {
		var err error
		resp, err = c.api.CreateTranscription(ctx, req)
		return err
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateImage creates one 1024x1024 image and returns its URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := sdk.ImageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           sdk.CreateImageSize1024x1024,
		Quality:        sdk.CreateImageQualityStandard,
		ResponseFormat: sdk.CreateImageResponseFormatURL,
	}

	var resp sdk.ImageResponse
	err := c.call(ctx, func() error {
		var err error
		resp, err = c.api.CreateImage(ctx, req)
		return err
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("no image returned from image generation")
	}
	return resp.Data[0].URL, nil
}

// call runs one request. There are no retries; the limiter only paces calls.
func (c *Client) call(ctx context.Context, request func() error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	err := request()
	if c.limiter != nil {
		switch {
		case err == nil:
			c.limiter.Recover()
		case IsRateLimited(err):
			c.limiter.Backoff(2)
		}
	}
	return err
}
