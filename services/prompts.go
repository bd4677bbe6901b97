package services

import "fmt"

const (
	defaultImagePrompt    = "Please analyze this image in detail."
	defaultAudioPrompt    = "Please provide a summary and key points from this audio transcription."
	defaultDocumentPrompt = "Please analyze this document and provide key insights."
)

// Persona names the assistant and the person it serves
type Persona struct {
	AssistantName string // "SamraAI"
	UserName      string // how the user is addressed, "Samra"
	UserFullName  string // "Samra Ilyas"
}

// DefaultPersona returns the stock persona
func DefaultPersona() Persona {
	return Persona{
		AssistantName: "SamraAI",
		UserName:      "Samra",
		UserFullName:  "Samra Ilyas",
	}
}

func (p Persona) chatSystemPrompt() string {
	return fmt.Sprintf(`You are %s, a personal study and research assistant created exclusively for %s, an MPhil student.
Always address the user as "%s". Be polite, academic, conversational, and helpful.
Provide detailed, well-researched answers, but ensure the reply is clean and formatted in plain text (no Markdown, no symbols like # or *).
When appropriate, suggest further reading or research directions.`, p.AssistantName, p.UserFullName, p.UserName)
}

func (p Persona) imageSystemPrompt() string {
	return fmt.Sprintf("You are %s, an AI assistant helping %s with image analysis. Respond in plain text without Markdown formatting.",
		p.AssistantName, p.UserFullName)
}

func (p Persona) documentSystemPrompt() string {
	return fmt.Sprintf("You are %s, helping %s analyze documents. Provide clear, academic explanations in plain text only, no Markdown or symbols.",
		p.AssistantName, p.UserFullName)
}
