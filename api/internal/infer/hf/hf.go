// Package hf calls Hugging Face text2text inference endpoints hosting the
// fine-tuned IndicBART corrector and the MultiIndic paraphrase generator.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"vakyashuddhi/api/internal/infer"
)

type Engine struct {
	CorrectURL  string
	GenerateURL string
	Token       string
	httpc       *http.Client
}

func New(correctURL, generateURL, token string) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // TCP connect
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// Cold model replicas take a while to emit first headers.
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}
	return &Engine{
		CorrectURL:  strings.TrimSpace(correctURL),
		GenerateURL: strings.TrimSpace(generateURL),
		Token:       strings.TrimSpace(token),
		httpc:       &http.Client{Timeout: 0, Transport: tr},
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g. for tests).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string { return "hf" }

// Correct sends the sentence in the corrector's training format: the text,
// an end marker, and the Hindi language tag.
func (e *Engine) Correct(ctx context.Context, sentence string) (string, error) {
	if e.CorrectURL == "" {
		return "", fmt.Errorf("hf correct: %w", infer.ErrModelUnavailable)
	}
	params := map[string]any{
		"num_beams":      5,
		"max_length":     128,
		"early_stopping": true,
	}
	return e.infer(ctx, e.CorrectURL, sentence+" </s> <2hi>", params)
}

func (e *Engine) Generate(ctx context.Context, in infer.GenerateInput) (string, error) {
	if e.GenerateURL == "" {
		return "", fmt.Errorf("hf generate: %w", infer.ErrModelUnavailable)
	}
	params := map[string]any{
		"num_beams":                    in.NumBeams,
		"max_length":                   in.MaxLength,
		"min_length":                   1,
		"no_repeat_ngram_size":         in.NoRepeatNGramSize,
		"encoder_no_repeat_ngram_size": in.EncoderNoRepeatNGramSize,
		"early_stopping":               true,
		"do_sample":                    false,
	}
	return e.infer(ctx, e.GenerateURL, strings.TrimSpace(in.Text)+" </s> "+in.LangTag, params)
}

// Translate is not served by the hosted endpoints; deployments that need
// non-Hindi paraphrase targets pair this engine with the Gemini one.
func (e *Engine) Translate(_ context.Context, _, code string) (string, error) {
	return "", fmt.Errorf("hf engine has no translation model for %q: %w", code, infer.ErrModelUnavailable)
}

func (e *Engine) infer(ctx context.Context, url, input string, params map[string]any) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"inputs":     input,
		"parameters": params,
		"options":    map[string]any{"wait_for_model": true},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.Token != "" {
		req.Header.Set("Authorization", "Bearer "+e.Token)
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("hf: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hf: read body: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("hf %d: %s: %w", resp.StatusCode, truncateBytes(body, 200), infer.ErrModelUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hf %d: %s", resp.StatusCode, truncateBytes(body, 200))
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("hf: bad JSON: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", fmt.Errorf("hf: empty generation")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}

func truncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
