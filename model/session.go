package model

import "time"

// DefaultSessionTitle is used when a session is created without a title.
const DefaultSessionTitle = "New Chat"

// Session is a client-generated conversation thread. SessionID is the opaque
// identifier the browser generates; ID is the storage row key.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"session_id"`
	Title     string    `gorm:"type:varchar(255);default:'New Chat'" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}
