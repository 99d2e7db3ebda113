// Package content generates per-channel marketing copy from a validated
// CampaignIntent via channel-specialized LLM prompts.
package content

import (
	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// Platform identifies a social network for social-channel generation.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

// SocialPlatforms is the fixed pair every social fan-out generates for.
// No selection logic exists upstream; the pair is intentional.
var SocialPlatforms = []Platform{PlatformFacebook, PlatformInstagram}

// Content is the per-channel structured output of the generator. Concrete
// types carry only the fields their channel uses; untyped maps appear only
// at the persistence boundary (see codec.go).
type Content interface {
	Channel() intent.Channel
	// Key is the content-map key a campaign stores this under: the channel
	// name, or the platform name for social content.
	Key() string
}

// EmailContent is generated email copy.
type EmailContent struct {
	Subject string `json:"subject"`
	Preview string `json:"preview,omitempty"`
	Body    string `json:"body"`
}

func (EmailContent) Channel() intent.Channel { return intent.ChannelEmail }
func (EmailContent) Key() string             { return string(intent.ChannelEmail) }

// SocialContent is generated copy for one social platform. Hashtags are
// folded into Description as a space-joined string.
type SocialContent struct {
	Platform    Platform `json:"platform"`
	Body        string   `json:"body"`
	Description string   `json:"description,omitempty"`
}

func (SocialContent) Channel() intent.Channel { return intent.ChannelSocial }
func (c SocialContent) Key() string           { return string(c.Platform) }

// PPCContent is generated pay-per-click ad copy.
type PPCContent struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	CTA         string `json:"cta,omitempty"`
}

func (PPCContent) Channel() intent.Channel { return intent.ChannelPPC }
func (PPCContent) Key() string             { return string(intent.ChannelPPC) }

// SMSContent is a generated text message. The 160-character target is a
// prompt hint, not enforced here.
type SMSContent struct {
	Body string `json:"body"`
}

func (SMSContent) Channel() intent.Channel { return intent.ChannelSMS }
func (SMSContent) Key() string             { return string(intent.ChannelSMS) }

var (
	_ Content = EmailContent{}
	_ Content = SocialContent{}
	_ Content = PPCContent{}
	_ Content = SMSContent{}
)
