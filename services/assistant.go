package services

import (
	"context"
	"fmt"

	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services/openai"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// LanguageModel is the subset of the OpenAI client the assistant needs
type LanguageModel interface {
	ChatCompletion(ctx context.Context, messages []openai.Message, options ...openai.Option) (*openai.ChatResponse, error)
	Transcribe(ctx context.Context, audio []byte, fileName string, options ...openai.TranscriptionOption) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Assistant wraps the language model with the persona prompts and cleans every reply
type Assistant struct {
	llm     LanguageModel
	persona Persona
	log     *applog.Logger
}

// NewAssistant creates a new assistant
func NewAssistant(llm LanguageModel, persona Persona, log *applog.Logger) *Assistant {
	return &Assistant{
		llm:     llm,
		persona: persona,
		log:     log.With("component", "Assistant"),
	}
}

// GenerateChatResponse answers message given prior turns in chronological order
func (a *Assistant) GenerateChatResponse(ctx context.Context, message string, history []openai.Message) (string, error) {
	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.TextMessage(string(model.MessageRoleSystem), a.persona.chatSystemPrompt()))
	messages = append(messages, history...)
	messages = append(messages, openai.TextMessage(string(model.MessageRoleUser), message))

	resp, err := a.llm.ChatCompletion(ctx, messages,
		openai.WithTemperature(0.7),
		openai.WithMaxTokens(2000),
	)
	if err != nil {
		a.log.Error("chat completion failed", "error", err)
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return CleanResponse(resp.Choices[0].Message.Content), nil
}

// AnalyzeImage describes the image at imageURL
func (a *Assistant) AnalyzeImage(ctx context.Context, imageURL, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultImagePrompt
	}
	messages := []openai.Message{
		openai.TextMessage(string(model.MessageRoleSystem), a.persona.imageSystemPrompt()),
		openai.ImageMessage(prompt, imageURL),
	}

	resp, err := a.llm.ChatCompletion(ctx, messages, openai.WithMaxTokens(1500))
	if err != nil {
		a.log.Error("image analysis failed", "error", err)
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}
	return CleanResponse(resp.Choices[0].Message.Content), nil
}

// TranscribeAudio converts audio bytes to cleaned text
func (a *Assistant) TranscribeAudio(ctx context.Context, audio []byte, fileName string) (string, error) {
	text, err := a.llm.Transcribe(ctx, audio, fileName, openai.WithLanguage("en"))
	if err != nil {
		a.log.Error("transcription failed", "error", err)
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return CleanResponse(text), nil
}

// AnalyzeDocument answers prompt about the document text
func (a *Assistant) AnalyzeDocument(ctx context.Context, documentText, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultDocumentPrompt
	}
	messages := []openai.Message{
		openai.TextMessage(string(model.MessageRoleSystem), a.persona.documentSystemPrompt()),
		openai.TextMessage(string(model.MessageRoleUser), fmt.Sprintf("%s\n\nDocument content:\n%s", prompt, documentText)),
	}

	resp, err := a.llm.ChatCompletion(ctx, messages,
		openai.WithTemperature(0.7),
		openai.WithMaxTokens(2500),
	)
	if err != nil {
		a.log.Error("document analysis failed", "error", err)
		return "", fmt.Errorf("failed to analyze document: %w", err)
	}
	return CleanResponse(resp.Choices[0].Message.Content), nil
}

// GenerateImage returns the URL of an image generated from prompt
func (a *Assistant) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", newValidationError("Prompt is required")
	}
	url, err := a.llm.GenerateImage(ctx, prompt)
	if err != nil {
		a.log.Error("image generation failed", "error", err)
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	return url, nil
}
