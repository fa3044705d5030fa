package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstJSONObjectFindsEmbeddedSpan(t *testing.T) {
	raw := "Sure, here is the data:\n{\"Employee Name\": \"John Doe\",\n\"Filing Year\": \"2023\"}\nLet me know if you need more."
	span, ok := FirstJSONObject(raw)
	assert.True(t, ok)
	assert.Equal(t, "{\"Employee Name\": \"John Doe\",\n\"Filing Year\": \"2023\"}", span)
}

func TestFirstJSONObjectShortestMatchPolicy(t *testing.T) {
	// Two sibling objects: only the first is returned.
	raw := `{"a": "1"} and then {"b": "2"}`
	span, ok := FirstJSONObject(raw)
	assert.True(t, ok)
	assert.Equal(t, `{"a": "1"}`, span)
}

func TestFirstJSONObjectNoBraces(t *testing.T) {
	span, ok := FirstJSONObject("the model refused to answer")
	assert.False(t, ok)
	assert.Equal(t, "", span)
}

func TestFirstJSONObjectNestedTruncates(t *testing.T) {
	// Known limitation: nesting truncates at the first closing brace.
	span, ok := FirstJSONObject(`{"outer": {"inner": 1}}`)
	assert.True(t, ok)
	assert.Equal(t, `{"outer": {"inner": 1}`, span)
}
