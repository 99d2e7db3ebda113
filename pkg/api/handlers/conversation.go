package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/api/errors"
	"github.com/jordanlanch/campaignforge/pkg/conversation"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/middleware"
)

// ConversationHandler exposes the chat transcript endpoints
type ConversationHandler struct {
	conversations conversation.Repository
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations conversation.Repository) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// List returns the user's conversations, most recently active first.
func (h *ConversationHandler) List(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	conversations, total, err := h.conversations.ListByUser(c.Request().Context(), userID, (page-1)*limit, limit)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// Messages returns the full transcript of one conversation.
func (h *ConversationHandler) Messages(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid conversation id")
	}

	conv, err := h.conversations.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.Respond(c, err)
	}
	if conv.UserID != userID {
		return errors.Respond(c, domain.NewForbiddenError("conversation belongs to another user"))
	}

	messages, err := h.conversations.ListMessages(c.Request().Context(), id)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation": conv,
		"messages":     messages,
	})
}
