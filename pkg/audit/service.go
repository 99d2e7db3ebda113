// Package audit writes security-relevant events to the audit_logs table.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// Action literals recorded in the audit log.
const (
	ActionUserLogin      = "user_login"
	ActionUserRegister   = "user_register"
	ActionUserLogout     = "user_logout"
	ActionCampaignCreate = "campaign_create"
	ActionCampaignLaunch = "campaign_launch"
	ActionCampaignDelete = "campaign_delete"
	ActionStatusChange   = "campaign_status_change"
)

// Service handles audit logging
type Service struct {
	db  *sql.DB
	log logger.Logger
}

// NewService creates a new audit service
func NewService(db *sql.DB, log logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{db: db, log: log}
}

// LogEntry represents an audit log entry
type LogEntry struct {
	UserID       *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	Metadata     map[string]interface{}
}

// Log creates a new audit log entry. Audit failures are logged but never
// propagated; they must not break the request that triggered them.
func (s *Service) Log(ctx context.Context, entry LogEntry) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var metadata []byte
	if entry.Metadata != nil {
		metadata, _ = json.Marshal(entry.Metadata)
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, ip_address, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(), entry.UserID, entry.Action,
		nullable(entry.ResourceType), nullable(entry.ResourceID),
		nullable(entry.IPAddress), nullable(entry.UserAgent),
		metadata, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to write audit log", "action", entry.Action, "error", err)
	}
}

// GetRequestContext extracts the client IP and user agent from a request.
func GetRequestContext(c echo.Context) (string, string) {
	return c.RealIP(), c.Request().UserAgent()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
