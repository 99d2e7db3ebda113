// Package launch dispatches a ready campaign's content through per-channel
// delivery providers and records the resulting status transition.
package launch

import (
	"context"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// Provider delivers one channel's content to its destination.
type Provider interface {
	Channel() intent.Channel
	// Dispatch sends the content and returns the number of recipients or
	// placements it produced.
	Dispatch(ctx context.Context, camp *campaign.Campaign, c content.Content) (int64, error)
}

// LogProvider records dispatches to the structured log without calling any
// external network. Used for channels whose ad-platform integration is not
// wired (social, ppc) and as the development fallback for the rest.
type LogProvider struct {
	channel intent.Channel
	log     logger.Logger
}

// NewLogProvider creates a log-only provider for the given channel
func NewLogProvider(channel intent.Channel, log logger.Logger) *LogProvider {
	if log == nil {
		log = logger.Default()
	}
	return &LogProvider{channel: channel, log: log}
}

func (p *LogProvider) Channel() intent.Channel {
	return p.channel
}

func (p *LogProvider) Dispatch(ctx context.Context, camp *campaign.Campaign, c content.Content) (int64, error) {
	p.log.Info("dispatching content",
		"channel", p.channel,
		"campaign_id", camp.ID,
		"key", c.Key())
	return 1, nil
}

var _ Provider = (*LogProvider)(nil)
