package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/domain"
)

func TestExtractJSONObject_Bare(t *testing.T) {
	got, err := ExtractJSONObject(`{"subject": "Hello"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject": "Hello"}`, got)
}

func TestExtractJSONObject_SurroundedByProse(t *testing.T) {
	text := `Sure! Here is your email copy:

{"subject": "Big sale", "body": "Everything must go"}

Let me know if you'd like changes.`

	got, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject": "Big sale", "body": "Everything must go"}`, got)
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	text := `{"body": "use the {coupon} code { today"}`

	got, err := ExtractJSONObject(text)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "use the {coupon} code { today", decoded["body"])
}

func TestExtractJSONObject_Nested(t *testing.T) {
	text := `prefix {"a": {"b": {"c": 1}}} suffix`

	got, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": {"c": 1}}}`, got)
}

func TestExtractJSONObject_UnbalancedThenValid(t *testing.T) {
	// The first '{' opens an unterminated object; the scan must move on
	// and find the valid one.
	text := `{broken {"subject": "ok", "body": "fine"}`

	got, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject": "ok", "body": "fine"}`, got)
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	_, err := ExtractJSONObject("I cannot produce that content.")
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}

func TestExtractJSONObject_Empty(t *testing.T) {
	_, err := ExtractJSONObject("")
	require.Error(t, err)
	assert.True(t, domain.IsMalformedOutput(err))
}
