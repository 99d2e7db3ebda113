package launch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/metrics"
	"github.com/jordanlanch/campaignforge/pkg/reporting"
)

// Service launches ready campaigns by dispatching every content entry
// through its channel provider.
type Service struct {
	campaigns campaign.Repository
	providers map[intent.Channel]Provider
	reporter  reporting.Reporter
	log       logger.Logger
}

// NewService creates a launch service with the given providers. Channels
// without a registered provider fail dispatch for their entries.
func NewService(campaigns campaign.Repository, providers []Provider, reporter reporting.Reporter, log logger.Logger) *Service {
	if reporter == nil {
		reporter = reporting.Noop()
	}
	if log == nil {
		log = logger.Default()
	}
	byChannel := make(map[intent.Channel]Provider, len(providers))
	for _, p := range providers {
		byChannel[p.Channel()] = p
	}
	return &Service{
		campaigns: campaigns,
		providers: byChannel,
		reporter:  reporter,
		log:       log,
	}
}

// Result summarizes one launch attempt.
type Result struct {
	Campaign   *campaign.Campaign `json:"campaign"`
	Dispatched []string           `json:"dispatched"`
	Failed     map[string]string  `json:"failed,omitempty"`
}

// Launch dispatches every content entry of a launchable campaign. All
// entries dispatching moves the campaign to launched; a mix moves it to
// partially_launched; zero successes leave the status untouched and error
// out. Delivery counts land in the campaign's metrics.
func (s *Service) Launch(ctx context.Context, userID, id uuid.UUID) (*Result, error) {
	camp, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp.UserID != userID {
		return nil, domain.NewForbiddenError("campaign belongs to another user")
	}
	if !camp.Status.Launchable() {
		return nil, domain.NewConflictError(
			fmt.Sprintf("campaign in status %q cannot be launched", camp.Status))
	}
	if len(camp.Content) == 0 {
		return nil, domain.NewConflictError("campaign has no content to launch")
	}

	result := &Result{Campaign: camp, Dispatched: []string{}, Failed: map[string]string{}}
	if camp.Metrics == nil {
		camp.Metrics = map[string]int64{}
	}

	for key, entry := range camp.Content {
		provider, ok := s.providers[entry.Channel()]
		if !ok {
			result.Failed[key] = fmt.Sprintf("no provider registered for channel %s", entry.Channel())
			continue
		}

		count, err := provider.Dispatch(ctx, camp, entry)
		if err != nil {
			result.Failed[key] = err.Error()
			camp.Metrics[key+"_failed"]++
			s.reporter.CaptureError(err,
				map[string]string{"component": "launch_service", "method": "Launch"},
				map[string]any{"campaign_id": camp.ID.String(), "key": key})
			s.log.Error("dispatch failed", "campaign_id", camp.ID, "key", key, "error", err)
			continue
		}

		result.Dispatched = append(result.Dispatched, key)
		camp.Metrics[key+"_sent"] += count
	}

	if len(result.Dispatched) == 0 {
		metrics.RecordLaunch("failed")
		if err := s.campaigns.UpdateMetrics(ctx, camp.ID, camp.Metrics); err != nil {
			s.log.Warn("failed to persist launch metrics", "campaign_id", camp.ID, "error", err)
		}
		return nil, domain.NewInternalError(fmt.Errorf("all channels failed to dispatch"))
	}

	status := campaign.StatusLaunched
	launchResult := "launched"
	if len(result.Failed) > 0 {
		status = campaign.StatusPartiallyLaunched
		launchResult = "partial"
	}

	now := time.Now().UTC()
	if err := s.campaigns.UpdateStatus(ctx, camp.ID, status, &now); err != nil {
		return nil, domain.NewInternalError(err)
	}
	if err := s.campaigns.UpdateMetrics(ctx, camp.ID, camp.Metrics); err != nil {
		s.log.Warn("failed to persist launch metrics", "campaign_id", camp.ID, "error", err)
	}

	camp.Status = status
	camp.LaunchedAt = &now
	metrics.RecordLaunch(launchResult)

	s.log.Info("campaign launched",
		"campaign_id", camp.ID,
		"status", status,
		"dispatched", len(result.Dispatched),
		"failed", len(result.Failed))

	return result, nil
}

// LaunchDue launches every ready campaign whose schedule start date has
// arrived. Called by the cron runner; per-campaign failures are logged and
// skipped.
func (s *Service) LaunchDue(ctx context.Context, now time.Time) int {
	due, err := s.campaigns.ListScheduledBefore(ctx, now, campaign.StatusReady)
	if err != nil {
		s.log.Error("failed to list scheduled campaigns", "error", err)
		return 0
	}

	launched := 0
	for _, camp := range due {
		if _, err := s.Launch(ctx, camp.UserID, camp.ID); err != nil {
			s.log.Error("scheduled launch failed", "campaign_id", camp.ID, "error", err)
			continue
		}
		launched++
	}
	return launched
}
