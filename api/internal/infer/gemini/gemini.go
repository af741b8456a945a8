// Package gemini backs the correction, generation and translation contracts
// with the Gemini API. Temperature is pinned to zero so decoding stays
// deterministic and cacheable.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vakyashuddhi/api/internal/infer"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Correct(ctx context.Context, sentence string) (string, error) {
	sys := `You are a Hindi grammatical error correction system.
Return ONLY the corrected sentence, preserving the original meaning and word
order wherever it is already correct. No explanations, no transliteration.`
	return e.generate(ctx, sys, sentence)
}

func (e *Engine) Generate(ctx context.Context, in infer.GenerateInput) (string, error) {
	sys := fmt.Sprintf(`You are a paraphrase generator for Indic languages.
Rewrite the sentence in the language identified by the tag %s, keeping the
meaning intact. Return ONLY the rewritten sentence.`, in.LangTag)
	return e.generate(ctx, sys, strings.TrimSpace(in.Text))
}

func (e *Engine) Translate(ctx context.Context, text, code string) (string, error) {
	sys := fmt.Sprintf(`Translate the text into the language with ISO code %q.
Return ONLY the translation.`, code)
	return e.generate(ctx, sys, text)
}

func (e *Engine) generate(ctx context.Context, system, user string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is empty: %w", infer.ErrModelUnavailable)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return "", errors.New("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	// Retries cover transient 5xx from the API.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(user))
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		if txt := strings.TrimSpace(firstText(resp)); txt != "" {
			return txt, nil
		}
		return "", errors.New("gemini: empty response")
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
