package grammar

import (
	"regexp"
	"strings"
)

// Sentence units end on the Devanagari danda or Latin terminal punctuation.
// The terminator stays attached to the unit it closes.
var (
	sentenceRe   = regexp.MustCompile(`[^।.!?]+[।.!?]?`)
	contextRe    = regexp.MustCompile(`[^।.!?]*[।.!?]\s*`)
	devanagariRe = regexp.MustCompile(`[\x{0900}-\x{097F}]+`)
)

// Segment splits text into sentence-like units in original order. Pieces
// that are empty after trimming are dropped.
func Segment(text string) []string {
	var out []string
	for _, m := range sentenceRe.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SentenceContext returns the sentence enclosing the byte offset pos, for
// error-report readability. Falls back to the whole text when no terminated
// sentence covers the offset.
func SentenceContext(text string, pos int) string {
	for _, loc := range contextRe.FindAllStringIndex(text, -1) {
		if loc[0] <= pos && pos < loc[1] {
			return strings.TrimSpace(text[loc[0]:loc[1]])
		}
	}
	return text
}
