package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordanlanch/campaignforge/pkg/ai/llm"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/logger"
	"github.com/jordanlanch/campaignforge/pkg/reporting"
)

// MaxPromptLength bounds user input before any LLM call is made.
const MaxPromptLength = 4000

// Parser extracts a CampaignIntent from user text plus conversation context.
// It makes exactly one LLM call per Parse and never retries; retry policy
// belongs to the caller.
type Parser struct {
	llm      llm.LLMClient
	reporter reporting.Reporter
	log      logger.Logger
}

// NewParser creates a new intent parser
func NewParser(llmClient llm.LLMClient, reporter reporting.Reporter, log logger.Logger) *Parser {
	if log == nil {
		log = logger.Default()
	}
	if reporter == nil {
		reporter = reporting.Noop()
	}
	return &Parser{
		llm:      llmClient,
		reporter: reporter,
		log:      log,
	}
}

// SanitizePrompt trims the user prompt and rejects empty or oversized input
// before any LLM call. The violated constraint is named in the error.
func SanitizePrompt(userPrompt string) (string, error) {
	trimmed := strings.TrimSpace(userPrompt)
	if trimmed == "" {
		return "", domain.NewValidationError("prompt must not be empty")
	}
	if len(trimmed) > MaxPromptLength {
		return "", domain.NewValidationError(
			fmt.Sprintf("prompt exceeds maximum length of %d characters", MaxPromptLength))
	}
	return trimmed, nil
}

// Parse turns free text plus history into a validated CampaignIntent.
// LLM transport failures surface as GENERATION_UNAVAILABLE; schema or
// invariant failures surface as MALFORMED_OUTPUT. Both are fatal for the
// current request.
func (p *Parser) Parse(ctx context.Context, userPrompt string, history []Message) (*CampaignIntent, error) {
	prompt, err := SanitizePrompt(userPrompt)
	if err != nil {
		return nil, err
	}

	raw, err := p.llm.Complete(ctx, BuildParsePrompt(prompt, history), ParserSystemPrompt)
	if err != nil {
		p.log.Error("intent extraction call failed", "error", err)
		return nil, domain.NewGenerationUnavailableError(err)
	}

	intent, err := ValidateIntent(cleanJSONBlock(raw))
	if err != nil {
		p.reporter.CaptureError(err,
			map[string]string{"component": "intent_parser", "method": "Parse"},
			map[string]any{"raw_output": raw})
		return nil, err
	}

	p.log.Info("intent parsed",
		"needs_clarification", intent.NeedsClarification,
		"channels", len(intent.Channels))

	return intent, nil
}

// cleanJSONBlock strips markdown code fences some models insist on adding.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}

// RenderResponse produces the assistant's chat message for a parsed intent.
// Pure string templating, no LLM call: clarification questions are listed
// verbatim in order, otherwise a short confirmation is synthesized.
func RenderResponse(intent *CampaignIntent) string {
	if intent.NeedsClarification {
		var sb strings.Builder
		sb.WriteString("I need a few more details before I can build this campaign:\n")
		for i, q := range intent.ClarificationQuestions {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
		}
		if len(intent.ClarificationQuestions) == 0 {
			sb.WriteString("Could you describe your campaign goal and key message?\n")
		}
		return sb.String()
	}

	channels := make([]string, len(intent.Channels))
	for i, ch := range intent.Channels {
		channels[i] = string(ch)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Got it. I'll build a campaign to %s across %s, centered on %q.",
		intent.Goal, strings.Join(channels, ", "), intent.ContentSpec.KeyMessage))

	audience := describeAudience(intent.AudienceCriteria)
	if audience != "" {
		sb.WriteString(fmt.Sprintf(" Target audience: %s.", audience))
	}

	return sb.String()
}

func describeAudience(a AudienceCriteria) string {
	parts := []string{}
	if a.Demographics != "" {
		parts = append(parts, a.Demographics)
	}
	if a.Interests != "" {
		parts = append(parts, "interested in "+a.Interests)
	}
	if a.Location != "" {
		parts = append(parts, "in "+a.Location)
	}
	return strings.Join(parts, ", ")
}
