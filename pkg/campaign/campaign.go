// Package campaign holds the campaign aggregate and the orchestration
// service that turns a chat message into a persisted, launchable campaign.
package campaign

import (
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// Status is the lifecycle state of a campaign.
type Status string

const (
	// StatusDraft is reserved for campaigns saved before generation
	// completes, e.g. by the seeder. The orchestrator itself never
	// persists drafts.
	StatusDraft Status = "draft"
	// StatusReady means content exists for at least one channel and the
	// campaign can be launched.
	StatusReady Status = "ready"
	// StatusLaunched means every channel dispatched successfully.
	StatusLaunched Status = "launched"
	// StatusPartiallyLaunched means at least one channel dispatched and at
	// least one failed.
	StatusPartiallyLaunched Status = "partially_launched"
	// StatusCompleted means the campaign's schedule window has ended.
	StatusCompleted Status = "completed"
	// StatusPaused means launching is suspended by the user.
	StatusPaused Status = "paused"
)

// Valid reports whether s is a recognized status literal.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusLaunched, StatusPartiallyLaunched, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

// Launchable reports whether a campaign in this status may be launched.
// Partially launched campaigns may be relaunched to retry failed channels.
func (s Status) Launchable() bool {
	return s == StatusReady || s == StatusPartiallyLaunched
}

// Campaign is the persisted aggregate. Content holds one entry per channel
// key (platform key for social). Warnings records channels that failed
// generation so the UI can surface partial results.
type Campaign struct {
	ID               uuid.UUID                 `json:"id"`
	UserID           uuid.UUID                 `json:"user_id"`
	ConversationID   uuid.UUID                 `json:"conversation_id"`
	Name             string                    `json:"name"`
	Goal             string                    `json:"goal"`
	Status           Status                    `json:"status"`
	Channels         []intent.Channel          `json:"channels"`
	ContentSpec      intent.ContentSpec        `json:"content_spec"`
	AudienceCriteria intent.AudienceCriteria   `json:"audience_criteria"`
	Budget           *float64                  `json:"budget,omitempty"`
	Schedule         *intent.Schedule          `json:"schedule,omitempty"`
	BrandVoice       string                    `json:"brand_voice,omitempty"`
	Content          map[string]content.Content `json:"content"`
	Warnings         []string                  `json:"warnings,omitempty"`
	Metrics          map[string]int64          `json:"metrics,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
	LaunchedAt       *time.Time                `json:"launched_at,omitempty"`
}

// FromIntent builds an unsaved ready campaign from a parsed intent and its
// generated content. Name defaults to the goal; users can rename later.
func FromIntent(userID, conversationID uuid.UUID, in *intent.CampaignIntent, contents map[string]content.Content, warnings []string) *Campaign {
	now := time.Now().UTC()
	return &Campaign{
		ID:               uuid.New(),
		UserID:           userID,
		ConversationID:   conversationID,
		Name:             in.Goal,
		Goal:             in.Goal,
		Status:           StatusReady,
		Channels:         in.Channels,
		ContentSpec:      in.ContentSpec,
		AudienceCriteria: in.AudienceCriteria,
		Budget:           in.Budget,
		Schedule:         in.Schedule,
		Content:          contents,
		Warnings:         warnings,
		Metrics:          map[string]int64{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
