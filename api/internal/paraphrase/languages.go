package paraphrase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage marks a paraphrase target outside the generation
// model's tag set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// langCodes maps the free-form language names the clients send to the
// generation model's short codes. The table is total: every input either
// maps here or fails with ErrUnsupportedLanguage, never a silent default.
// "odia" is accepted as the current name for Oriya.
var langCodes = map[string]string{
	"assamese":  "as",
	"bengali":   "bn",
	"english":   "en",
	"gujarati":  "gu",
	"hindi":     "hi",
	"kannada":   "kn",
	"malayalam": "ml",
	"marathi":   "mr",
	"odia":      "or",
	"oriya":     "or",
	"punjabi":   "pa",
	"tamil":     "ta",
	"telugu":    "te",
}

// ResolveLanguage resolves a language name to its short code.
func ResolveLanguage(name string) (string, error) {
	code, ok := langCodes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	return code, nil
}
