package utils

import "regexp"

// Matches the shortest brace-delimited span, dot matching newlines.
var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*?\}`)

// FirstJSONObject locates the first brace-delimited span in raw model output.
// This is a heuristic, not a balanced-brace parse: a payload containing nested
// objects truncates at the first closing brace. Models prompted to emit a flat
// six-key object stay within that limit. Returns ok=false when no span exists.
func FirstJSONObject(text string) (string, bool) {
	match := jsonObjectRegex.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}
