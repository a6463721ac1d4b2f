package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is append-only. It is both the conversation log and the
// context source for later career prompts.
type ChatMessage struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_message_user_created,priority:1" json:"user_id"`
	Role    string    `gorm:"column:role;type:text;not null" json:"role"`
	Content string    `gorm:"column:content;type:text;not null;default:''" json:"content"`

	CreatedAt time.Time `gorm:"not null;index:idx_chat_message_user_created,priority:2" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}
