package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/api/errors"
	"github.com/jordanlanch/campaignforge/pkg/audit"
	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/middleware"
	"github.com/jordanlanch/campaignforge/pkg/models"
	"github.com/jordanlanch/campaignforge/pkg/user"
)

// ChatHandler handles the campaign-building chat endpoint
type ChatHandler struct {
	campaigns   *campaign.Service
	users       *user.Service
	auditLogger *audit.Service
	llmTimeout  time.Duration
	validator   *validator.Validate
}

// NewChatHandler creates a new chat handler
func NewChatHandler(campaigns *campaign.Service, users *user.Service, auditLogger *audit.Service, llmTimeout time.Duration) *ChatHandler {
	if llmTimeout <= 0 {
		llmTimeout = 30 * time.Second
	}
	return &ChatHandler{
		campaigns:   campaigns,
		users:       users,
		auditLogger: auditLogger,
		llmTimeout:  llmTimeout,
		validator:   validator.New(),
	}
}

// Chat processes one conversational turn. The timeout bounds the whole
// turn including every LLM call it fans out.
func (h *ChatHandler) Chat(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.llmTimeout)
	defer cancel()

	brandVoice := ""
	if u, err := h.users.Get(ctx, userID); err == nil {
		brandVoice = u.BrandVoice
	}

	result, err := h.campaigns.ProcessTurn(ctx, userID, req.ConversationID, req.Message, brandVoice)
	if err != nil {
		return errors.Respond(c, err)
	}

	if result.Campaign != nil {
		ip, ua := audit.GetRequestContext(c)
		go h.auditLogger.Log(context.Background(), audit.LogEntry{
			UserID:       &userID,
			Action:       audit.ActionCampaignCreate,
			ResourceType: "campaign",
			ResourceID:   result.Campaign.ID.String(),
			IPAddress:    ip,
			UserAgent:    ua,
		})
	}

	return c.JSON(http.StatusOK, result)
}
