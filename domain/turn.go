package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is a single message in a conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// PendingConfirmation holds an outstanding language-switch question: the
// language the detector saw and the message that triggered it.
type PendingConfirmation struct {
	DetectedLanguage string
	OriginalText     string
}

// ArchivedMessage is a turn persisted to the conversation archive.
type ArchivedMessage struct {
	MessageID string    `json:"message_id"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
