// Package jobs runs the scheduled background work: launching due campaigns
// and logging pipeline stats.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/launch"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron      *cron.Cron
	launcher  *launch.Service
	campaigns campaign.Repository
	log       logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(launcher *launch.Service, campaigns campaign.Repository, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}
	return &CronManager{
		cron:      cron.New(),
		launcher:  launcher,
		campaigns: campaigns,
		log:       log,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	// Every 15 minutes: launch ready campaigns whose start date arrived
	_, err := cm.cron.AddFunc("*/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		launched := cm.launcher.LaunchDue(ctx, time.Now().UTC())
		if launched > 0 {
			cm.log.Info("scheduled launcher finished", "launched", launched)
		}
	})
	if err != nil {
		return err
	}

	// Daily at 1 AM: log campaign counts by status
	_, err = cm.cron.AddFunc("0 1 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		counts, err := cm.campaigns.CountByStatus(ctx)
		if err != nil {
			cm.log.Error("failed to count campaigns", "error", err)
			return
		}
		for status, count := range counts {
			cm.log.Info("campaign stats", "status", status, "count", count)
		}
	})
	if err != nil {
		return err
	}

	return nil
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.cron.Start()
	cm.log.Info("cron scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
	cm.log.Info("cron scheduler stopped")
}
