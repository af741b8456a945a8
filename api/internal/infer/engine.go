// Package infer defines the contracts for the opaque sequence-to-sequence
// services the grammar and paraphrase pipelines call, plus the engine
// implementations behind them.
package infer

import (
	"context"
	"errors"
)

// ErrModelUnavailable marks an engine that failed to load or is not
// configured for the requested operation.
var ErrModelUnavailable = errors.New("model unavailable")

// GenerateInput is one tagged generation request. All decoding is
// deterministic: beam search, no sampling.
type GenerateInput struct {
	Text                     string
	LangTag                  string // e.g. "<2hi>"
	NumBeams                 int
	MaxLength                int
	NoRepeatNGramSize        int
	EncoderNoRepeatNGramSize int
}

// Engine is one backing model service.
type Engine interface {
	Name() string
	// Correct returns the grammatically corrected form of one sentence.
	Correct(ctx context.Context, sentence string) (string, error)
	// Generate decodes the top beam for a tagged paraphrase input.
	Generate(ctx context.Context, in GenerateInput) (string, error)
	// Translate renders text into the language identified by code.
	Translate(ctx context.Context, text, code string) (string, error)
}

type Engines struct {
	HF     Engine
	Gemini Engine
}

func (e *Engines) Get(name string) (Engine, error) {
	switch name {
	case "hf", "":
		if e.HF == nil {
			return nil, ErrModelUnavailable
		}
		return e.HF, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, ErrModelUnavailable
		}
		return e.Gemini, nil
	default:
		return nil, errors.New("unknown engine; use 'hf' or 'gemini'")
	}
}
