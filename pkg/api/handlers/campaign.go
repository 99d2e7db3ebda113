package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/api/errors"
	"github.com/jordanlanch/campaignforge/pkg/audit"
	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/launch"
	"github.com/jordanlanch/campaignforge/pkg/middleware"
	"github.com/jordanlanch/campaignforge/pkg/models"
)

// CampaignHandler handles campaign CRUD and launch endpoints
type CampaignHandler struct {
	campaigns   *campaign.Service
	launcher    *launch.Service
	auditLogger *audit.Service
	validator   *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaigns *campaign.Service, launcher *launch.Service, auditLogger *audit.Service) *CampaignHandler {
	return &CampaignHandler{
		campaigns:   campaigns,
		launcher:    launcher,
		auditLogger: auditLogger,
		validator:   validator.New(),
	}
}

// List returns the user's campaigns with pagination and status filter.
func (h *CampaignHandler) List(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	status := campaign.Status(c.QueryParam("status"))

	result, err := h.campaigns.List(c.Request().Context(), userID, status, page, limit)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns one campaign with its generated content.
func (h *CampaignHandler) Get(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid campaign id")
	}

	camp, err := h.campaigns.Get(c.Request().Context(), userID, id)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, camp)
}

// SetStatus pauses, resumes or completes a campaign.
func (h *CampaignHandler) SetStatus(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid campaign id")
	}

	var req models.StatusRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	camp, err := h.campaigns.SetStatus(c.Request().Context(), userID, id, campaign.Status(req.Status))
	if err != nil {
		return errors.Respond(c, err)
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:       &userID,
		Action:       audit.ActionStatusChange,
		ResourceType: "campaign",
		ResourceID:   id.String(),
		IPAddress:    ip,
		UserAgent:    ua,
		Metadata:     map[string]interface{}{"status": req.Status},
	})

	return c.JSON(http.StatusOK, camp)
}

// Launch dispatches a ready campaign through its channel providers.
func (h *CampaignHandler) Launch(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid campaign id")
	}

	result, err := h.launcher.Launch(c.Request().Context(), userID, id)
	if err != nil {
		return errors.Respond(c, err)
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:       &userID,
		Action:       audit.ActionCampaignLaunch,
		ResourceType: "campaign",
		ResourceID:   id.String(),
		IPAddress:    ip,
		UserAgent:    ua,
		Metadata: map[string]interface{}{
			"dispatched": len(result.Dispatched),
			"failed":     len(result.Failed),
		},
	})

	return c.JSON(http.StatusOK, result)
}

// Metrics returns the per-campaign delivery counters.
func (h *CampaignHandler) Metrics(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid campaign id")
	}

	metrics, err := h.campaigns.Metrics(c.Request().Context(), userID, id)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"campaign_id": id, "metrics": metrics})
}

// Delete removes a campaign.
func (h *CampaignHandler) Delete(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.BadRequest(c, "Invalid campaign id")
	}

	if err := h.campaigns.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.Respond(c, err)
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:       &userID,
		Action:       audit.ActionCampaignDelete,
		ResourceType: "campaign",
		ResourceID:   id.String(),
		IPAddress:    ip,
		UserAgent:    ua,
	})

	return c.NoContent(http.StatusNoContent)
}
