package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/ai/llm"
	"github.com/jordanlanch/campaignforge/pkg/domain"
)

// fakeLLM returns a canned response or error and records the last prompt.
type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
}

func (f *fakeLLM) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Message: f.response}, nil
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, systemPrompt ...string) (string, error) {
	f.lastPrompt = prompt
	if len(systemPrompt) > 0 {
		f.lastSystem = systemPrompt[0]
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) CountTokens(text string) int { return len(text) / 4 }

func TestParser_Parse(t *testing.T) {
	client := &fakeLLM{response: `{
		"goal": "launch new app",
		"channels": ["email", "ppc"],
		"content_spec": {"key_message": "Try it free"},
		"needs_clarification": false
	}`}
	parser := NewParser(client, nil, nil)

	parsed, err := parser.Parse(context.Background(), "launch my new app with email and ads", nil)
	require.NoError(t, err)

	assert.Equal(t, "launch new app", parsed.Goal)
	assert.Equal(t, []Channel{ChannelEmail, ChannelPPC}, parsed.Channels)
	assert.Equal(t, ParserSystemPrompt, client.lastSystem)
	assert.Contains(t, client.lastPrompt, "launch my new app")
}

func TestParser_Parse_StripsMarkdownFences(t *testing.T) {
	client := &fakeLLM{response: "```json\n{\"needs_clarification\": true, \"clarification_questions\": [\"What channels?\"]}\n```"}
	parser := NewParser(client, nil, nil)

	parsed, err := parser.Parse(context.Background(), "make me a campaign", nil)
	require.NoError(t, err)
	assert.True(t, parsed.NeedsClarification)
}

func TestParser_Parse_IncludesHistory(t *testing.T) {
	client := &fakeLLM{response: `{"needs_clarification": true}`}
	parser := NewParser(client, nil, nil)

	history := []Message{
		{Role: "user", Content: "I want to promote my bakery"},
		{Role: "assistant", Content: "Which channels would you like?"},
	}
	_, err := parser.Parse(context.Background(), "email please", history)
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "promote my bakery")
	assert.Contains(t, client.lastPrompt, "Which channels would you like?")
	// History comes before the current request
	assert.Less(t,
		strings.Index(client.lastPrompt, "promote my bakery"),
		strings.Index(client.lastPrompt, "email please"))
}

func TestParser_Parse_TransportError(t *testing.T) {
	client := &fakeLLM{err: errors.New("connection refused")}
	parser := NewParser(client, nil, nil)

	_, err := parser.Parse(context.Background(), "promote my store", nil)
	require.Error(t, err)
	assert.True(t, domain.IsGenerationUnavailable(err))
}

func TestParser_Parse_GarbageOutput(t *testing.T) {
	client := &fakeLLM{response: "I would love to help you with your campaign!"}
	parser := NewParser(client, nil, nil)

	_, err := parser.Parse(context.Background(), "promote my store", nil)
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}

func TestSanitizePrompt_Empty(t *testing.T) {
	_, err := SanitizePrompt("   \n\t ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "empty")
}

func TestSanitizePrompt_TooLong(t *testing.T) {
	_, err := SanitizePrompt(strings.Repeat("a", MaxPromptLength+1))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "4000")
}

func TestSanitizePrompt_Trims(t *testing.T) {
	got, err := SanitizePrompt("  promote my store  ")
	require.NoError(t, err)
	assert.Equal(t, "promote my store", got)
}

func TestRenderResponse_ClarificationOrder(t *testing.T) {
	msg := RenderResponse(&CampaignIntent{
		NeedsClarification:     true,
		ClarificationQuestions: []string{"What is your budget?", "When should it start?"},
	})

	assert.Contains(t, msg, "1. What is your budget?")
	assert.Contains(t, msg, "2. When should it start?")
	assert.Less(t, strings.Index(msg, "budget"), strings.Index(msg, "start"))
}

func TestRenderResponse_Confirmation(t *testing.T) {
	msg := RenderResponse(&CampaignIntent{
		Goal:        "promote summer sale",
		Channels:    []Channel{ChannelEmail, ChannelSMS},
		ContentSpec: ContentSpec{KeyMessage: "30% off"},
		AudienceCriteria: AudienceCriteria{
			Demographics: "adults 25-40",
			Location:     "Miami",
		},
	})

	assert.Contains(t, msg, "promote summer sale")
	assert.Contains(t, msg, "email, sms")
	assert.Contains(t, msg, "30% off")
	assert.Contains(t, msg, "adults 25-40")
	assert.Contains(t, msg, "in Miami")
}
