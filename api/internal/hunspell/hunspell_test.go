package hunspell

import (
	"os"
	"path/filepath"
	"testing"
)

const testAff = `SET UTF-8
TRY अआइईउऊएऐकखगघचछजझटठडढतथदधनपफबभमयरलवशषसहािीुूेैोौ्ं

REP 2
REP जे झे
REP ि ी

SFX A Y 2
SFX A 0 ों .
SFX A ा े ा
`

const testDic = `4
किताब/A
लड़का/A
मुझे
घर
`

func newTestSpeller(t *testing.T) *Speller {
	t.Helper()
	dir := t.TempDir()
	dic := filepath.Join(dir, "hi_IN.dic")
	aff := filepath.Join(dir, "hi_IN.aff")
	if err := os.WriteFile(dic, []byte(testDic), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(aff, []byte(testAff), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New(dic, aff)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSpell(t *testing.T) {
	s := newTestSpeller(t)

	cases := []struct {
		word string
		want bool
	}{
		{"किताब", true},
		{"मुझे", true},
		{"घर", true},
		{"किताबों", true}, // SFX A, unconditional rule
		{"लड़के", true},    // SFX A, strip ा add े
		{"", true},
		{"मुजे", false},
		{"घरर", false},
		{"किताबे", false},
	}
	for _, tc := range cases {
		if got := s.Spell(tc.word); got != tc.want {
			t.Errorf("Spell(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestSuggestRepTable(t *testing.T) {
	s := newTestSpeller(t)

	got := s.Suggest("मुजे")
	if len(got) == 0 || got[0] != "मुझे" {
		t.Fatalf("Suggest(मुजे) = %v, want मुझे first", got)
	}
	for i, c := range got {
		if c == "मुजे" {
			t.Errorf("input echoed back at %d: %v", i, got)
		}
	}
}

func TestSuggestEdits(t *testing.T) {
	s := newTestSpeller(t)

	got := s.Suggest("घरर")
	if len(got) == 0 || got[0] != "घर" {
		t.Errorf("Suggest(घरर) = %v, want घर first", got)
	}
}

func TestSuggestValidWord(t *testing.T) {
	s := newTestSpeller(t)
	if got := s.Suggest("किताब"); got != nil {
		t.Errorf("Suggest of a valid word = %v, want nil", got)
	}
}

func TestSetExtra(t *testing.T) {
	s := newTestSpeller(t)
	if s.Spell("गूगल") {
		t.Fatal("गूगल valid before SetExtra")
	}
	s.SetExtra(func(word string) bool { return word == "गूगल" })
	if !s.Spell("गूगल") {
		t.Error("extra source not consulted")
	}
	if s.Spell("याहू") {
		t.Error("extra source accepted everything")
	}
}

func TestUnitDL(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"घर", "घर", 0},
		{"घर", "", 2},
		{"घरर", "घर", 1},
		{"घर", "रघ", 1}, // transposition
		{"मुजे", "मुझे", 1},
		{"किताब", "कलम", 4},
	}
	for _, tc := range cases {
		if got := unitDL(tc.a, tc.b); got != tc.want {
			t.Errorf("unitDL(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCondMatches(t *testing.T) {
	cases := []struct {
		cond   string
		word   string
		prefix bool
		want   bool
	}{
		{".", "घर", false, true},
		{"ा", "लड़का", false, true},
		{"ा", "किताब", false, false},
		{"[ाी]", "लड़का", false, true},
		{"[^ा]", "लड़का", false, false},
		{"[^ा]", "किताब", false, true},
		{"क", "किताब", true, true},
		{"ग", "किताब", true, false},
	}
	for _, tc := range cases {
		if got := condMatches(tc.cond, tc.word, tc.prefix); got != tc.want {
			t.Errorf("condMatches(%q, %q, prefix=%v) = %v, want %v", tc.cond, tc.word, tc.prefix, got, tc.want)
		}
	}
}
