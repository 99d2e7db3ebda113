package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/xeipuuv/gojsonschema"
)

// intentSchema is the JSON Schema the model's output must conform to.
// needs_clarification is deliberately required with no default: downstream
// branching depends on it being explicit. Unknown channel literals fail
// validation instead of being silently dropped.
const intentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "goal": {"type": "string"},
    "channels": {
      "type": "array",
      "items": {"type": "string", "enum": ["email", "social", "ppc", "sms"]},
      "uniqueItems": true
    },
    "content_spec": {
      "type": "object",
      "properties": {
        "tone": {"type": "string"},
        "key_message": {"type": "string"},
        "call_to_action": {"type": "string"}
      },
      "additionalProperties": false
    },
    "audience_criteria": {
      "type": "object",
      "properties": {
        "demographics": {"type": "string"},
        "interests": {"type": "string"},
        "location": {"type": "string"}
      },
      "additionalProperties": false
    },
    "budget": {"type": "number", "exclusiveMinimum": 0},
    "schedule": {
      "type": "object",
      "properties": {
        "start_date": {"type": "string"},
        "end_date": {"type": "string"}
      },
      "required": ["start_date"],
      "additionalProperties": false
    },
    "needs_clarification": {"type": "boolean"},
    "clarification_questions": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "required": ["needs_clarification"],
  "additionalProperties": false
}`

// ValidateIntent validates raw model output against the intent schema and,
// when it passes, enforces the readiness invariant: an intent that does not
// need clarification must carry a goal, at least one channel, and a key
// message. Violations surface as MALFORMED_OUTPUT before the intent can
// reach the content generator.
func ValidateIntent(raw string) (*CampaignIntent, error) {
	schemaLoader := gojsonschema.NewStringLoader(intentSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// The document failed to load as JSON at all.
		return nil, domain.NewMalformedOutputError("model output is not valid JSON", err)
	}

	if !result.Valid() {
		var sb strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			sb.WriteString(fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, domain.NewMalformedOutputError(
			fmt.Sprintf("model output failed schema validation: %s", sb.String()), nil)
	}

	var intent CampaignIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, domain.NewMalformedOutputError("failed to decode model output", err)
	}

	if !intent.NeedsClarification {
		if err := checkReady(&intent); err != nil {
			return nil, err
		}
	}

	return &intent, nil
}

// checkReady enforces the output contract for clarification-free intents.
// The schema alone cannot couple field presence to needs_clarification, so
// this runs as an explicit post-validation step.
func checkReady(intent *CampaignIntent) error {
	if strings.TrimSpace(intent.Goal) == "" {
		return domain.NewMalformedOutputError("intent is marked complete but has no goal", nil)
	}
	if len(intent.Channels) == 0 {
		return domain.NewMalformedOutputError("intent is marked complete but has no channels", nil)
	}
	for _, ch := range intent.Channels {
		if !ch.Valid() {
			return domain.NewMalformedOutputError(
				fmt.Sprintf("intent contains unrecognized channel %q", ch), nil)
		}
	}
	if strings.TrimSpace(intent.ContentSpec.KeyMessage) == "" {
		return domain.NewMalformedOutputError("intent is marked complete but has no key message", nil)
	}
	return nil
}
