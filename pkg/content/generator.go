package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jordanlanch/campaignforge/pkg/ai/llm"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/reporting"
)

// Generator produces structured marketing copy for one channel at a time.
// It never invents fallback content; a channel that fails returns an error
// and the caller decides how to degrade.
type Generator struct {
	llm      llm.LLMClient
	reporter reporting.Reporter
	log      logger.Logger
}

// NewGenerator creates a content generator
func NewGenerator(client llm.LLMClient, reporter reporting.Reporter, log logger.Logger) *Generator {
	if reporter == nil {
		reporter = reporting.Noop()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Generator{llm: client, reporter: reporter, log: log}
}

// Request describes one generation unit of work. Platform is only set for
// the social channel.
type Request struct {
	Intent     *intent.CampaignIntent
	Channel    intent.Channel
	Platform   Platform
	BrandVoice string
}

// Generate produces content for a single channel. Social requests generate
// for exactly one platform; fan-out over platforms happens in the caller.
func (g *Generator) Generate(ctx context.Context, req Request) (Content, error) {
	if req.Intent == nil {
		return nil, domain.NewValidationError("campaign intent is required")
	}

	prompt, err := g.buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.Complete(ctx, prompt, GeneratorSystemPrompt)
	if err != nil {
		g.report("Generate", req, raw, err)
		g.log.Error("content generation call failed", "channel", req.Channel, "platform", req.Platform, "error", err)
		return nil, g.channelError(req, domain.ErrCodeGenerationUnavailable, err)
	}

	parsed, err := g.parseOutput(req, raw)
	if err != nil {
		g.report("Generate", req, raw, err)
		g.log.Error("content generation output invalid", "channel", req.Channel, "platform", req.Platform, "error", err)
		return nil, g.channelError(req, domain.ErrCodeMalformedOutput, err)
	}

	g.log.Debug("content generated", "channel", req.Channel, "platform", req.Platform)
	return parsed, nil
}

func (g *Generator) buildPrompt(req Request) (string, error) {
	switch req.Channel {
	case intent.ChannelEmail:
		return EmailPrompt(req.Intent, req.BrandVoice), nil
	case intent.ChannelSocial:
		return SocialPrompt(req.Intent, req.Platform, req.BrandVoice), nil
	case intent.ChannelPPC:
		return PPCPrompt(req.Intent, req.BrandVoice), nil
	case intent.ChannelSMS:
		return SMSPrompt(req.Intent, req.BrandVoice), nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unsupported channel: %s", req.Channel))
	}
}

// parseOutput extracts the JSON object from raw model output and decodes it
// into the channel's typed content, enforcing the per-channel required
// fields. Optional fields are kept when present and dropped silently when
// missing.
func (g *Generator) parseOutput(req Request, raw string) (Content, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	switch req.Channel {
	case intent.ChannelEmail:
		var c EmailContent
		if err := json.Unmarshal([]byte(obj), &c); err != nil {
			return nil, domain.NewMalformedOutputError("email content is not valid JSON", err)
		}
		if c.Subject == "" || c.Body == "" {
			return nil, domain.NewMalformedOutputError("email content missing subject or body", nil)
		}
		return c, nil

	case intent.ChannelSocial:
		var payload struct {
			Body     string   `json:"body"`
			Hashtags []string `json:"hashtags"`
		}
		if err := json.Unmarshal([]byte(obj), &payload); err != nil {
			return nil, domain.NewMalformedOutputError("social content is not valid JSON", err)
		}
		if payload.Body == "" {
			return nil, domain.NewMalformedOutputError("social content missing body", nil)
		}
		return SocialContent{
			Platform:    req.Platform,
			Body:        payload.Body,
			Description: strings.Join(payload.Hashtags, " "),
		}, nil

	case intent.ChannelPPC:
		var c PPCContent
		if err := json.Unmarshal([]byte(obj), &c); err != nil {
			return nil, domain.NewMalformedOutputError("ppc content is not valid JSON", err)
		}
		if c.Headline == "" || c.Description == "" {
			return nil, domain.NewMalformedOutputError("ppc content missing headline or description", nil)
		}
		return c, nil

	case intent.ChannelSMS:
		var c SMSContent
		if err := json.Unmarshal([]byte(obj), &c); err != nil {
			return nil, domain.NewMalformedOutputError("sms content is not valid JSON", err)
		}
		if c.Body == "" {
			return nil, domain.NewMalformedOutputError("sms content missing body", nil)
		}
		return c, nil
	}

	return nil, domain.NewValidationError(fmt.Sprintf("unsupported channel: %s", req.Channel))
}

// channelError wraps the underlying failure in a user-facing error that
// names the channel without leaking provider details.
func (g *Generator) channelError(req Request, code string, err error) error {
	label := string(req.Channel)
	if req.Channel == intent.ChannelSocial && req.Platform != "" {
		label = string(req.Platform)
	}
	return &domain.DomainError{
		Code:    code,
		Message: fmt.Sprintf("Failed to generate %s content. Please try again.", label),
		Err:     err,
	}
}

func (g *Generator) report(method string, req Request, raw string, err error) {
	extras := map[string]any{
		"goal":    req.Intent.Goal,
		"channel": string(req.Channel),
	}
	if req.Platform != "" {
		extras["platform"] = string(req.Platform)
	}
	if req.BrandVoice != "" {
		extras["brand_voice"] = req.BrandVoice
	}
	if raw != "" {
		extras["raw_output"] = raw
	}
	g.reporter.CaptureError(err, map[string]string{
		"component": "content_generator",
		"method":    method,
	}, extras)
}
