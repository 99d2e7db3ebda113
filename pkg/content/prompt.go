package content

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// GeneratorSystemPrompt is the system prompt for all content generation calls
const GeneratorSystemPrompt = `You are an expert marketing copywriter.

Your role is to:
- Write channel-appropriate marketing copy for the campaign brief you are given
- Match the requested tone and brand voice
- Stay on the key message and drive the call to action

Rules:
1. Respond with a single JSON object using exactly the fields requested
2. Do not wrap the JSON in markdown fences or add commentary
3. Never pad with placeholder text; write real copy`

// platformHints carries the per-platform style and length guidance injected
// into social prompts. Lengths are targets requested of the model, not
// mechanically enforced.
var platformHints = map[Platform]string{
	PlatformFacebook:  "conversational tone, up to 500 characters",
	PlatformInstagram: "visual, emoji-friendly tone, up to 300 characters",
	PlatformTwitter:   "punchy tone, up to 280 characters",
	PlatformLinkedIn:  "professional tone, up to 700 characters",
}

// brief renders the shared campaign context every channel prompt starts with.
func brief(in *intent.CampaignIntent, brandVoice string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Campaign goal: %s\n", in.Goal))
	sb.WriteString(fmt.Sprintf("Key message: %s\n", in.ContentSpec.KeyMessage))
	if in.ContentSpec.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s\n", in.ContentSpec.Tone))
	}
	if in.ContentSpec.CallToAction != "" {
		sb.WriteString(fmt.Sprintf("Call to action: %s\n", in.ContentSpec.CallToAction))
	}
	if brandVoice != "" {
		sb.WriteString(fmt.Sprintf("Brand voice: %s\n", brandVoice))
	}

	audience := []string{}
	if in.AudienceCriteria.Demographics != "" {
		audience = append(audience, in.AudienceCriteria.Demographics)
	}
	if in.AudienceCriteria.Interests != "" {
		audience = append(audience, "interested in "+in.AudienceCriteria.Interests)
	}
	if in.AudienceCriteria.Location != "" {
		audience = append(audience, "located in "+in.AudienceCriteria.Location)
	}
	if len(audience) > 0 {
		sb.WriteString(fmt.Sprintf("Audience: %s\n", strings.Join(audience, ", ")))
	}

	return sb.String()
}

// EmailPrompt builds the generation prompt for the email channel
func EmailPrompt(in *intent.CampaignIntent, brandVoice string) string {
	return fmt.Sprintf(`Write a marketing email for the following campaign.

%s
Requirements:
- subject: up to 60 characters
- preview: preview text, up to 100 characters
- body: 200 to 400 words

Respond with a single JSON object: {"subject": "...", "preview": "...", "body": "..."}`,
		brief(in, brandVoice))
}

// SocialPrompt builds the generation prompt for one social platform
func SocialPrompt(in *intent.CampaignIntent, platform Platform, brandVoice string) string {
	hint, ok := platformHints[platform]
	if !ok {
		hint = "concise, engaging tone"
	}

	return fmt.Sprintf(`Write a %s post for the following campaign.

%s
Requirements:
- body: the post text, %s
- hashtags: a list of relevant hashtags including the # prefix

Respond with a single JSON object: {"body": "...", "hashtags": ["#...", "#..."]}`,
		platform, brief(in, brandVoice), hint)
}

// PPCPrompt builds the generation prompt for pay-per-click ad copy
func PPCPrompt(in *intent.CampaignIntent, brandVoice string) string {
	return fmt.Sprintf(`Write pay-per-click ad copy for the following campaign.

%s
Requirements:
- headline: up to 30 characters
- description: up to 90 characters
- cta: a short call-to-action label

Respond with a single JSON object: {"headline": "...", "description": "...", "cta": "..."}`,
		brief(in, brandVoice))
}

// SMSPrompt builds the generation prompt for the SMS channel
func SMSPrompt(in *intent.CampaignIntent, brandVoice string) string {
	return fmt.Sprintf(`Write a marketing SMS for the following campaign.

%s
Requirements:
- body: the message text, up to 160 characters

Respond with a single JSON object: {"body": "..."}`,
		brief(in, brandVoice))
}
