package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/domain"
)

func TestValidateIntent_Complete(t *testing.T) {
	raw := `{
		"goal": "promote summer sale",
		"channels": ["email", "social"],
		"content_spec": {"tone": "playful", "key_message": "30% off everything", "call_to_action": "Shop now"},
		"audience_criteria": {"demographics": "adults 25-40", "location": "Miami"},
		"budget": 5000,
		"needs_clarification": false
	}`

	parsed, err := ValidateIntent(raw)
	require.NoError(t, err)

	assert.Equal(t, "promote summer sale", parsed.Goal)
	assert.Equal(t, []Channel{ChannelEmail, ChannelSocial}, parsed.Channels)
	assert.Equal(t, "30% off everything", parsed.ContentSpec.KeyMessage)
	require.NotNil(t, parsed.Budget)
	assert.Equal(t, 5000.0, *parsed.Budget)
	assert.False(t, parsed.NeedsClarification)
}

func TestValidateIntent_Clarification(t *testing.T) {
	raw := `{
		"needs_clarification": true,
		"clarification_questions": ["What is your budget?", "Which channels do you want?"]
	}`

	parsed, err := ValidateIntent(raw)
	require.NoError(t, err)

	assert.True(t, parsed.NeedsClarification)
	assert.Len(t, parsed.ClarificationQuestions, 2)
	assert.Equal(t, "What is your budget?", parsed.ClarificationQuestions[0])
}

func TestValidateIntent_NotJSON(t *testing.T) {
	_, err := ValidateIntent("sorry, I can't help with that")
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}

func TestValidateIntent_MissingNeedsClarification(t *testing.T) {
	raw := `{"goal": "promote sale", "channels": ["email"], "content_spec": {"key_message": "hi"}}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
	assert.Contains(t, err.Error(), "needs_clarification")
}

func TestValidateIntent_UnknownChannel(t *testing.T) {
	raw := `{
		"goal": "promote sale",
		"channels": ["email", "carrier_pigeon"],
		"content_spec": {"key_message": "hi"},
		"needs_clarification": false
	}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}

func TestValidateIntent_UnknownField(t *testing.T) {
	raw := `{"needs_clarification": true, "vibes": "immaculate"}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}

func TestValidateIntent_CompleteWithoutGoal(t *testing.T) {
	raw := `{
		"channels": ["email"],
		"content_spec": {"key_message": "hi"},
		"needs_clarification": false
	}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
	assert.Contains(t, err.Error(), "goal")
}

func TestValidateIntent_CompleteWithoutChannels(t *testing.T) {
	raw := `{
		"goal": "promote sale",
		"content_spec": {"key_message": "hi"},
		"needs_clarification": false
	}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
	assert.Contains(t, err.Error(), "channels")
}

func TestValidateIntent_CompleteWithoutKeyMessage(t *testing.T) {
	raw := `{
		"goal": "promote sale",
		"channels": ["sms"],
		"content_spec": {"tone": "urgent"},
		"needs_clarification": false
	}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
	assert.Contains(t, err.Error(), "key message")
}

func TestValidateIntent_NegativeBudget(t *testing.T) {
	raw := `{
		"goal": "promote sale",
		"channels": ["email"],
		"content_spec": {"key_message": "hi"},
		"budget": -10,
		"needs_clarification": false
	}`

	_, err := ValidateIntent(raw)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}
