package grammar

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeSpeller treats every word as valid except the keys of bad, whose values
// are the suggestions to return.
type fakeSpeller struct {
	bad map[string][]string
}

func (f fakeSpeller) Spell(word string) bool {
	_, flagged := f.bad[word]
	return !flagged
}

func (f fakeSpeller) Suggest(word string) []string { return f.bad[word] }

type fakeCorrector struct {
	out map[string]string
	err error

	mu    sync.Mutex
	calls int
}

func (f *fakeCorrector) Correct(ctx context.Context, sentence string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if out, ok := f.out[sentence]; ok {
		return out, nil
	}
	return sentence, nil
}

func TestCheckEmptyInput(t *testing.T) {
	c := NewChecker(fakeSpeller{}, nil)
	for _, in := range []string{"", "   ", "\n\t"} {
		r := c.Check(context.Background(), in)
		if r.Errors == nil || len(r.Errors) != 0 {
			t.Errorf("Check(%q).Errors = %v, want empty non-nil slice", in, r.Errors)
		}
		want := Stats{Grammar: 100, Fluency: 100, Clarity: 100, Engagement: 100}
		if r.Stats != want {
			t.Errorf("Check(%q).Stats = %+v, want all 100", in, r.Stats)
		}
	}
}

func TestCheckDictionaryOnly(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{"चाहीए": {"चाहिए"}}}
	c := NewChecker(sp, nil)

	r := c.Check(context.Background(), "मुझे किताब चाहीए")
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(r.Errors), r.Errors)
	}
	e := r.Errors[0]
	if e.Type != TypeSpelling || e.Original != "चाहीए" || e.Suggestion != "चाहिए" {
		t.Errorf("got %+v, want spelling चाहीए → चाहिए", e)
	}
	if e.ID != 1 {
		t.Errorf("ID = %d, want 1", e.ID)
	}
	if r.Corrected != "मुझे किताब चाहीए" {
		t.Errorf("Corrected = %q, want the input unchanged", r.Corrected)
	}
}

// When the model fixes the same word the dictionary flagged, only the model
// finding survives.
func TestCheckSuppressesCoveredSpelling(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{"चाहीए": {"चाहिए"}}}
	corr := &fakeCorrector{out: map[string]string{
		"मुझे किताब चाहीए": "मुझे किताब चाहिए",
	}}
	c := NewChecker(sp, corr)

	r := c.Check(context.Background(), "मुझे किताब चाहीए")
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(r.Errors), r.Errors)
	}
	e := r.Errors[0]
	if e.Type == TypeSpelling {
		t.Errorf("dictionary finding survived alongside the model fix: %+v", e)
	}
	if e.Original != "चाहीए" || e.Suggestion != "चाहिए" {
		t.Errorf("got %q → %q, want चाहीए → चाहिए", e.Original, e.Suggestion)
	}
	if r.Corrected != "मुझे किताब चाहिए" {
		t.Errorf("Corrected = %q", r.Corrected)
	}
}

func TestCheckReconciliation(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{"मुजे": {"मुझे"}}}
	corr := &fakeCorrector{out: map[string]string{
		"मुजे आप का किताब चाहिए": "मुझे आप की किताब चाहिए",
	}}
	c := NewChecker(sp, corr)

	r := c.Check(context.Background(), "मुजे आप का किताब चाहिए")
	if len(r.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(r.Errors), r.Errors)
	}
	first, second := r.Errors[0], r.Errors[1]
	// Both passes flag मुजे; only the first entry survives.
	if first.Type != TypeSpelling || first.Original != "मुजे" || first.Message != "Possible spelling mistake" {
		t.Errorf("first = %+v, want the dictionary finding for मुजे", first)
	}
	if second.Type != TypeGenderAgreement || second.Original != "का" || second.Suggestion != "की" {
		t.Errorf("second = %+v, want gender agreement का → की", second)
	}
	for i, e := range r.Errors {
		if e.ID != i+1 {
			t.Errorf("IDs not contiguous from 1: %+v", r.Errors)
			break
		}
	}
	if r.Stats.TotalErrors != 2 || r.Stats.TotalWords != 5 {
		t.Errorf("Stats totals = %+v", r.Stats)
	}
	if r.Stats.Grammar != 87 { // 100 - 5 (spelling) - 8 (agreement)
		t.Errorf("Grammar = %d, want 87", r.Stats.Grammar)
	}
}

func TestCheckDedupeAcrossSentences(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{"मुजे": {"मुझे"}}}
	c := NewChecker(sp, nil)

	r := c.Check(context.Background(), "मुजे किताब दो। मुजे कलम दो।")
	if len(r.Errors) != 1 {
		t.Fatalf("got %d errors, want 1 after dedupe: %+v", len(r.Errors), r.Errors)
	}
	if r.Errors[0].ID != 1 {
		t.Errorf("ID = %d, want 1", r.Errors[0].ID)
	}
}

// A correction failure on one sentence degrades that sentence to dictionary
// findings instead of failing the request.
func TestCheckCorrectorFailure(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{"मुजे": {"मुझे"}}}
	corr := &fakeCorrector{err: errors.New("model down")}
	c := NewChecker(sp, corr)

	r := c.Check(context.Background(), "मुजे किताब चाहिए")
	if len(r.Errors) != 1 || r.Errors[0].Type != TypeSpelling {
		t.Fatalf("got %+v, want the dictionary finding only", r.Errors)
	}
	if r.Corrected != "मुजे किताब चाहिए" {
		t.Errorf("Corrected = %q, want the original sentence", r.Corrected)
	}
}

// Findings come back in sentence order even though sentences run concurrently.
func TestCheckPreservesSentenceOrder(t *testing.T) {
	sp := fakeSpeller{bad: map[string][]string{
		"गलतिक": {"गलती"},
		"गलतिद": {"गलती"},
		"गलतित": {"गलती"},
		"गलतिच": {"गलती"},
	}}
	c := NewChecker(sp, nil)

	r := c.Check(context.Background(), "यह गलतिक है। यह गलतिद है। यह गलतित है। यह गलतिच है।")
	want := []string{"गलतिक", "गलतिद", "गलतित", "गलतिच"}
	if len(r.Errors) != len(want) {
		t.Fatalf("got %d errors, want %d: %+v", len(r.Errors), len(want), r.Errors)
	}
	for i, e := range r.Errors {
		if e.Original != want[i] {
			t.Errorf("error %d = %q, want %q", i, e.Original, want[i])
		}
	}
}
