// Package paraphrase rewrites text sentence by sentence through an opaque
// generation service, optionally chaining a translation step when the target
// differs from the generator's native language.
package paraphrase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"vakyashuddhi/api/internal/grammar"
	"vakyashuddhi/api/internal/infer"
)

// ErrEmptyInput marks a request whose text is empty after trimming.
var ErrEmptyInput = errors.New("empty input")

// The generation model natively paraphrases Hindi; other targets go through
// the translation step.
const nativeLang = "hi"

// Fixed decoding configuration: beam search, no sampling, repetition
// constrained against both the generated continuation and the encoder input.
const (
	numBeams      = 4
	maxLength     = 64
	noRepeatNGram = 3
)

// Translator renders text into the language identified by code.
type Translator interface {
	Translate(ctx context.Context, text, code string) (string, error)
}

// Generator decodes the top beam for a tagged input.
type Generator interface {
	Generate(ctx context.Context, in infer.GenerateInput) (string, error)
}

type Pipeline struct {
	gen     Generator
	tr      Translator // may be nil: non-native targets then fail
	workers int
}

func New(gen Generator, tr Translator) *Pipeline {
	return &Pipeline{gen: gen, tr: tr, workers: 4}
}

// Paraphrase rewrites text into the requested language. Sentences share no
// state and run concurrently; a single sentence failure fails the whole
// request, since the output only reads coherently when every unit succeeds.
func (p *Pipeline) Paraphrase(ctx context.Context, text, language string) (string, error) {
	code, err := ResolveLanguage(language)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	// Unlike the grammar checker, paraphrasing has no degraded mode.
	if p.gen == nil {
		return "", infer.ErrModelUnavailable
	}

	units := grammar.Segment(text)
	outs := make([]string, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, unit := range units {
		g.Go(func() error {
			out, err := p.gen.Generate(gctx, infer.GenerateInput{
				Text:                     unit,
				LangTag:                  "<2" + code + ">",
				NumBeams:                 numBeams,
				MaxLength:                maxLength,
				NoRepeatNGramSize:        noRepeatNGram,
				EncoderNoRepeatNGramSize: noRepeatNGram,
			})
			if err != nil {
				return fmt.Errorf("paraphrase sentence %d: %w", i+1, err)
			}
			if code != nativeLang {
				if p.tr == nil {
					return fmt.Errorf("translate to %s: %w", code, infer.ErrModelUnavailable)
				}
				out, err = p.tr.Translate(gctx, out, code)
				if err != nil {
					return fmt.Errorf("translate sentence %d: %w", i+1, err)
				}
			}
			outs[i] = strings.TrimSpace(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(outs, " "), nil
}
