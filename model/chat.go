package model

import "time"

// MessageRole represents the role of a message in a model conversation
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ChatMessage is one turn: the user's text paired with the assistant's reply.
// SessionID references Session.SessionID by value only.
type ChatMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   string    `gorm:"type:varchar(255);not null;index" json:"session_id"`
	UserMessage string    `gorm:"type:text;not null" json:"user_message"`
	BotResponse string    `gorm:"type:text;not null" json:"bot_response"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}
