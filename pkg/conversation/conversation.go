// Package conversation stores the chat transcript that drives campaign
// creation. Messages are append-only; history is replayed into the intent
// parser on every turn.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// Role literals for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups the messages of one campaign-building session.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one stored chat turn. CampaignID links the assistant message
// that announced a campaign to the campaign it created.
type Message struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversation_id"`
	Role           string     `json:"role"`
	Content        string     `json:"content"`
	CampaignID     *uuid.UUID `json:"campaign_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToIntentMessages converts stored messages into the parser's context form,
// preserving order.
func ToIntentMessages(messages []*Message) []intent.Message {
	out := make([]intent.Message, len(messages))
	for i, m := range messages {
		out[i] = intent.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
