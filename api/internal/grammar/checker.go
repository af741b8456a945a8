package grammar

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Speller validates single Devanagari tokens and proposes corrections.
// The first suggestion is the preferred candidate.
type Speller interface {
	Spell(word string) bool
	Suggest(word string) []string
}

// Corrector returns a grammatically corrected rendition of one sentence.
type Corrector interface {
	Correct(ctx context.Context, sentence string) (string, error)
}

// Checker reconciles dictionary and model findings into one report.
// A nil Corrector degrades every request to dictionary-only detection.
type Checker struct {
	speller Speller
	corr    Corrector
	workers int
}

func NewChecker(speller Speller, corr Corrector) *Checker {
	return &Checker{speller: speller, corr: corr, workers: 4}
}

// Check produces the grammar report for text. Sentences are independent and
// run on a bounded pool; a per-sentence correction failure leaves that
// sentence with its spelling findings only.
func (c *Checker) Check(ctx context.Context, text string) Report {
	if strings.TrimSpace(text) == "" {
		return Report{Errors: []Error{}, Stats: ComputeStats("", nil)}
	}

	sentences := Segment(text)
	type sentenceResult struct {
		spelling   []Error
		structural []Error
		corrected  string
	}
	results := make([]sentenceResult, len(sentences))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, sentence := range sentences {
		g.Go(func() error {
			res := &results[i]
			res.spelling = c.checkSpelling(sentence)
			res.corrected = sentence
			if c.corr == nil {
				return nil
			}
			corrected, err := c.corr.Correct(gctx, sentence)
			if err != nil {
				log.Printf("grammar: correction failed, keeping spelling findings only: %v", err)
				return nil
			}
			res.corrected = corrected
			res.structural = Classify(sentence, corrected)
			return nil
		})
	}
	_ = g.Wait()

	var all []Error
	corrected := make([]string, 0, len(sentences))
	for _, r := range results {
		all = append(all, r.spelling...)
		all = append(all, r.structural...)
		corrected = append(corrected, r.corrected)
	}

	unique := dedupe(suppressCovered(all))
	for i := range unique {
		unique[i].ID = i + 1
	}
	return Report{
		Errors:    unique,
		Stats:     ComputeStats(text, unique),
		Corrected: strings.Join(corrected, " "),
	}
}

// checkSpelling flags out-of-dictionary Devanagari tokens. Text outside the
// script range is never scanned.
func (c *Checker) checkSpelling(sentence string) []Error {
	var errs []Error
	id := 1
	for _, loc := range devanagariRe.FindAllStringIndex(sentence, -1) {
		word := sentence[loc[0]:loc[1]]
		if c.speller.Spell(word) {
			continue
		}
		suggestions := c.speller.Suggest(word)
		if len(suggestions) == 0 {
			continue
		}
		errs = append(errs, Error{
			ID:         id,
			Type:       TypeSpelling,
			Message:    "Possible spelling mistake",
			Original:   word,
			Suggestion: suggestions[0],
			Context:    SentenceContext(sentence, loc[0]),
		})
		id++
	}
	return errs
}

// suppressCovered drops Spelling findings whose surface form also appears in
// a structural finding: the model's fix subsumes the dictionary flag, and
// reporting both is redundant. Normalization strips trailing punctuation, so
// a shared stem elsewhere in the sentence can falsely suppress; this is a
// known limitation kept for compatibility.
func suppressCovered(errs []Error) []Error {
	covered := make(map[string]bool)
	for _, e := range errs {
		if e.Type != TypeSpelling {
			covered[normalizeSurface(e.Original)] = true
		}
	}
	out := errs[:0]
	for _, e := range errs {
		if e.Type == TypeSpelling && covered[normalizeSurface(e.Original)] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normalizeSurface(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "।.,!?")
}

// dedupe collapses errors sharing (original, type), keeping the first
// occurrence and the relative order.
func dedupe(errs []Error) []Error {
	type key struct{ original, typ string }
	seen := make(map[key]bool, len(errs))
	unique := make([]Error, 0, len(errs))
	for _, e := range errs {
		k := key{e.Original, e.Type}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, e)
	}
	return unique
}
