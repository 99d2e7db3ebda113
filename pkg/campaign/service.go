package campaign

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/conversation"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/metrics"
	"github.com/jordanlanch/campaignforge/pkg/reporting"
)

// IntentParser extracts a CampaignIntent from a chat turn.
type IntentParser interface {
	Parse(ctx context.Context, userPrompt string, history []intent.Message) (*intent.CampaignIntent, error)
}

// ContentGenerator produces copy for a single channel request.
type ContentGenerator interface {
	Generate(ctx context.Context, req content.Request) (content.Content, error)
}

// Service orchestrates the chat-to-campaign pipeline: parse the turn,
// fan out content generation, persist the result, and keep the transcript.
type Service struct {
	campaigns     Repository
	conversations conversation.Repository
	parser        IntentParser
	generator     ContentGenerator
	reporter      reporting.Reporter
	log           logger.Logger
}

// NewService creates a campaign service
func NewService(
	campaigns Repository,
	conversations conversation.Repository,
	parser IntentParser,
	generator ContentGenerator,
	reporter reporting.Reporter,
	log logger.Logger,
) *Service {
	if reporter == nil {
		reporter = reporting.Noop()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		campaigns:     campaigns,
		conversations: conversations,
		parser:        parser,
		generator:     generator,
		reporter:      reporter,
		log:           log,
	}
}

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	ConversationID     uuid.UUID `json:"conversation_id"`
	Message            string    `json:"message"`
	NeedsClarification bool      `json:"needs_clarification"`
	Campaign           *Campaign `json:"campaign,omitempty"`
	Warnings           []string  `json:"warnings,omitempty"`
}

// ProcessTurn runs one chat turn end to end. A clarification turn stores the
// exchange and returns questions without generating anything. A complete
// intent fans out per-channel generation; partial failures degrade to
// warnings, but if every channel fails no campaign is persisted and the turn
// errors out.
func (s *Service) ProcessTurn(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, prompt, brandVoice string) (*TurnResult, error) {
	prompt, err := intent.SanitizePrompt(prompt)
	if err != nil {
		return nil, err
	}

	conv, history, err := s.loadConversation(ctx, userID, conversationID, prompt)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.AppendMessage(ctx, &conversation.Message{
		ConversationID: conv.ID,
		Role:           conversation.RoleUser,
		Content:        prompt,
	}); err != nil {
		return nil, domain.NewInternalError(err)
	}

	parsed, err := s.parser.Parse(ctx, prompt, history)
	if err != nil {
		metrics.RecordChatTurn("error")
		return nil, err
	}

	if parsed.NeedsClarification {
		metrics.RecordChatTurn("clarification")
		return s.finishTurn(ctx, conv.ID, &TurnResult{
			ConversationID:     conv.ID,
			Message:            intent.RenderResponse(parsed),
			NeedsClarification: true,
		})
	}

	contents, warnings := s.generateAll(ctx, parsed, brandVoice)

	if len(contents) == 0 {
		metrics.RecordChatTurn("error")
		err := domain.NewTotalFailureError()
		s.reporter.CaptureError(err,
			map[string]string{"component": "campaign_service", "method": "ProcessTurn"},
			map[string]any{"goal": parsed.Goal, "channels": channelStrings(parsed.Channels)})
		return nil, err
	}

	camp := FromIntent(userID, conv.ID, parsed, contents, warnings)
	if err := s.campaigns.Create(ctx, camp); err != nil {
		metrics.RecordChatTurn("error")
		return nil, err
	}

	metrics.RecordChatTurn("campaign_created")
	s.log.Info("campaign created",
		"campaign_id", camp.ID,
		"channels", len(parsed.Channels),
		"warnings", len(warnings))

	message := intent.RenderResponse(parsed)
	if len(warnings) > 0 {
		message += "\n\nSome channels could not be generated:\n"
		for _, w := range warnings {
			message += "- " + w + "\n"
		}
	}

	return s.finishTurn(ctx, conv.ID, &TurnResult{
		ConversationID: conv.ID,
		Message:        message,
		Campaign:       camp,
		Warnings:       warnings,
	})
}

// loadConversation resolves or creates the conversation for this turn and
// returns the prior transcript as parser context.
func (s *Service) loadConversation(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, prompt string) (*conversation.Conversation, []intent.Message, error) {
	if conversationID == nil || *conversationID == uuid.Nil {
		conv := &conversation.Conversation{
			UserID: userID,
			Title:  truncateTitle(prompt),
		}
		if err := s.conversations.Create(ctx, conv); err != nil {
			return nil, nil, domain.NewInternalError(err)
		}
		return conv, nil, nil
	}

	conv, err := s.conversations.GetByID(ctx, *conversationID)
	if err != nil {
		return nil, nil, err
	}
	if conv.UserID != userID {
		return nil, nil, domain.NewForbiddenError("conversation belongs to another user")
	}

	stored, err := s.conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, domain.NewInternalError(err)
	}
	return conv, conversation.ToIntentMessages(stored), nil
}

// generateAll fans out content generation across the intent's channels,
// expanding the social channel into its fixed platform pair. Each unit
// succeeds or fails independently.
func (s *Service) generateAll(ctx context.Context, parsed *intent.CampaignIntent, brandVoice string) (map[string]content.Content, []string) {
	requests := []content.Request{}
	for _, ch := range parsed.Channels {
		if ch == intent.ChannelSocial {
			for _, platform := range content.SocialPlatforms {
				requests = append(requests, content.Request{
					Intent: parsed, Channel: ch, Platform: platform, BrandVoice: brandVoice,
				})
			}
			continue
		}
		requests = append(requests, content.Request{
			Intent: parsed, Channel: ch, BrandVoice: brandVoice,
		})
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		contents = map[string]content.Content{}
		warnings = []string{}
	)

	for _, req := range requests {
		wg.Add(1)
		go func(req content.Request) {
			defer wg.Done()

			start := time.Now()
			generated, err := s.generator.Generate(ctx, req)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				metrics.RecordGeneration(string(req.Channel), "failure", elapsed)
				warnings = append(warnings, userMessage(err))
				s.log.Warn("channel generation failed",
					"channel", req.Channel, "platform", req.Platform, "error", err)
				return
			}
			metrics.RecordGeneration(string(req.Channel), "success", elapsed)
			contents[generated.Key()] = generated
		}(req)
	}

	wg.Wait()
	return contents, warnings
}

func (s *Service) finishTurn(ctx context.Context, conversationID uuid.UUID, result *TurnResult) (*TurnResult, error) {
	msg := &conversation.Message{
		ConversationID: conversationID,
		Role:           conversation.RoleAssistant,
		Content:        result.Message,
	}
	if result.Campaign != nil {
		msg.CampaignID = &result.Campaign.ID
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, domain.NewInternalError(err)
	}
	if err := s.conversations.Touch(ctx, conversationID); err != nil {
		s.log.Warn("failed to touch conversation", "conversation_id", conversationID, "error", err)
	}
	return result, nil
}

// Get returns a campaign owned by the given user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Campaign, error) {
	camp, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp.UserID != userID {
		return nil, domain.NewForbiddenError("campaign belongs to another user")
	}
	return camp, nil
}

// ListResult is a paginated campaign listing.
type ListResult struct {
	Campaigns []*Campaign `json:"campaigns"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
}

// List returns the user's campaigns, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID uuid.UUID, status Status, page, limit int) (*ListResult, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewBadRequestError(fmt.Sprintf("invalid status: %s", status))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	campaigns, total, err := s.campaigns.List(ctx, userID, status, (page-1)*limit, limit)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &ListResult{Campaigns: campaigns, Total: total, Page: page, Limit: limit}, nil
}

// SetStatus applies a user-driven status change (pause, resume, complete).
// Launch transitions are owned by the launch service, not this method.
func (s *Service) SetStatus(ctx context.Context, userID, id uuid.UUID, status Status) (*Campaign, error) {
	if !status.Valid() {
		return nil, domain.NewBadRequestError(fmt.Sprintf("invalid status: %s", status))
	}
	switch status {
	case StatusLaunched, StatusPartiallyLaunched:
		return nil, domain.NewBadRequestError("launch status is set by launching the campaign")
	}

	camp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.UpdateStatus(ctx, id, status, nil); err != nil {
		return nil, err
	}
	camp.Status = status
	return camp, nil
}

// Delete removes a campaign owned by the given user.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, id)
}

// Metrics returns the stored per-campaign delivery counters.
func (s *Service) Metrics(ctx context.Context, userID, id uuid.UUID) (map[string]int64, error) {
	camp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if camp.Metrics == nil {
		return map[string]int64{}, nil
	}
	return camp.Metrics, nil
}

// userMessage extracts the user-facing text from a domain error, falling
// back to a generic line for unexpected errors.
func userMessage(err error) string {
	if de, ok := err.(*domain.DomainError); ok {
		return de.Message
	}
	return "Content generation failed. Please try again."
}

func truncateTitle(prompt string) string {
	title := strings.TrimSpace(prompt)
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	return title
}
