package launch

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// SendGridProvider delivers email content through the SendGrid API. The
// campaign itself carries no recipient list yet, so dispatch sends a single
// proof email to the configured sender address.
type SendGridProvider struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       logger.Logger
}

// NewSendGridProvider creates the SendGrid email provider
func NewSendGridProvider(apiKey, fromEmail, fromName string, log logger.Logger) *SendGridProvider {
	if log == nil {
		log = logger.Default()
	}
	return &SendGridProvider{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (p *SendGridProvider) Channel() intent.Channel {
	return intent.ChannelEmail
}

func (p *SendGridProvider) Dispatch(ctx context.Context, camp *campaign.Campaign, c content.Content) (int64, error) {
	ec, ok := c.(content.EmailContent)
	if !ok {
		return 0, domain.NewInternalError(fmt.Errorf("email provider received %T content", c))
	}

	from := mail.NewEmail(p.fromName, p.fromEmail)
	to := mail.NewEmail(p.fromName, p.fromEmail)
	message := mail.NewSingleEmail(from, ec.Subject, to, ec.Body, renderHTML(ec))

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return 0, fmt.Errorf("sendgrid dispatch failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("sendgrid dispatch rejected with status %d: %s", resp.StatusCode, resp.Body)
	}

	p.log.Info("email dispatched",
		"campaign_id", camp.ID,
		"subject", ec.Subject,
		"status", resp.StatusCode)
	return 1, nil
}

func renderHTML(ec content.EmailContent) string {
	return fmt.Sprintf("<html><body><p>%s</p></body></html>", ec.Body)
}

var _ Provider = (*SendGridProvider)(nil)
