package intent

import (
	"fmt"
	"strings"
)

// ParserSystemPrompt is the system prompt for the intent extraction call
const ParserSystemPrompt = `You are a marketing campaign planner for a multi-channel campaign tool.

Your role is to:
- Read the user's request and the conversation so far
- Extract a structured campaign intent covering goal, channels, messaging, audience, budget and schedule
- Ask for clarification when the request is too vague to act on

Rules:
1. Supported channels are exactly: email, social, ppc, sms
2. Only mark the intent complete when the goal, at least one channel, and the key message are clear
3. When information is missing, set needs_clarification to true and list concrete questions
4. Never invent budgets, dates, or audience details the user did not state
5. Respond with a single JSON object and nothing else`

// FormatInstructions describes the exact JSON shape the extraction call must
// return. The field names here are matched literally by the schema validator,
// so any change must be mirrored in intentSchema.
const FormatInstructions = `Respond with a single JSON object using exactly these fields:
{
  "goal": "the campaign objective in the user's words",
  "channels": ["email" | "social" | "ppc" | "sms"],
  "content_spec": {
    "tone": "optional tone of voice",
    "key_message": "the core message to communicate",
    "call_to_action": "optional call to action"
  },
  "audience_criteria": {
    "demographics": "optional",
    "interests": "optional",
    "location": "optional"
  },
  "budget": optional positive number,
  "schedule": {"start_date": "...", "end_date": "optional"},
  "needs_clarification": true | false,
  "clarification_questions": ["only when needs_clarification is true"]
}
Do not wrap the JSON in markdown fences or add commentary.`

// BuildParsePrompt embeds the conversation transcript, the current user
// prompt, and the format instructions into a single extraction prompt.
func BuildParsePrompt(userPrompt string, history []Message) string {
	var sb strings.Builder

	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, msg := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Current request:\n%s\n\n", userPrompt))
	sb.WriteString(FormatInstructions)

	return sb.String()
}
