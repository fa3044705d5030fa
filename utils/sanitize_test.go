package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEscapesHTML(t *testing.T) {
	out := Sanitize(`<script>alert("x")</script>`)
	assert.False(t, strings.ContainsAny(out, "<>"))
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestSanitizeTrims(t *testing.T) {
	assert.Equal(t, "John Doe", Sanitize("  John Doe \n"))
}

func TestSanitizeNonString(t *testing.T) {
	assert.Equal(t, "", Sanitize(nil))
	assert.Equal(t, "", Sanitize(42))
	assert.Equal(t, "", Sanitize(3.14))
}

func TestSanitizeDoubleEscapes(t *testing.T) {
	once := Sanitize("A & B")
	assert.Equal(t, "A &amp; B", once)
	assert.Equal(t, "A &amp;amp; B", Sanitize(once))
}
