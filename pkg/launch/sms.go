package launch

import (
	"context"
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// SMSProvider validates the configured sender number and records the
// dispatch. No SMS gateway is wired yet; the validation keeps a bad
// from-number from passing silently until one is.
type SMSProvider struct {
	fromNumber string
	log        logger.Logger
}

// NewSMSProvider creates the SMS provider. fromNumber must be a valid
// number in E.164 or national US format.
func NewSMSProvider(fromNumber string, log logger.Logger) *SMSProvider {
	if log == nil {
		log = logger.Default()
	}
	return &SMSProvider{fromNumber: fromNumber, log: log}
}

func (p *SMSProvider) Channel() intent.Channel {
	return intent.ChannelSMS
}

func (p *SMSProvider) Dispatch(ctx context.Context, camp *campaign.Campaign, c content.Content) (int64, error) {
	sc, ok := c.(content.SMSContent)
	if !ok {
		return 0, domain.NewInternalError(fmt.Errorf("sms provider received %T content", c))
	}

	if p.fromNumber == "" {
		return 0, fmt.Errorf("sms dispatch requires a configured from number")
	}
	parsed, err := phonenumbers.Parse(p.fromNumber, "US")
	if err != nil {
		return 0, fmt.Errorf("invalid sms from number %q: %w", p.fromNumber, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return 0, fmt.Errorf("invalid sms from number %q", p.fromNumber)
	}

	p.log.Info("sms dispatched",
		"campaign_id", camp.ID,
		"from", phonenumbers.Format(parsed, phonenumbers.E164),
		"length", len(sc.Body))
	return 1, nil
}

var _ Provider = (*SMSProvider)(nil)
