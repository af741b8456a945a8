// Package hunspell loads a hunspell-format dictionary (.dic) and affix rule
// file (.aff) and answers spelling validity and correction-candidate queries
// for Devanagari words. The resource is fixed at load time; the serving path
// never mutates it.
package hunspell

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Speller is safe for concurrent use after New returns.
type Speller struct {
	vocab map[string]int64 // surface form -> corpus frequency (0 when absent)
	try   []rune
	reps  []repPair
	extra func(word string) bool

	maxSuggest int
}

type repPair struct{ from, to string }

// affixRule is one expansion line of an SFX or PFX group.
type affixRule struct {
	strip     string
	add       string
	condition string
	prefix    bool
}

// New maps and parses the dictionary and affix files. Both files are read
// through mmap and released before returning.
func New(dicPath, affPath string) (*Speller, error) {
	aff, err := readMapped(affPath)
	if err != nil {
		return nil, fmt.Errorf("hunspell: read aff: %w", err)
	}
	try, reps, rules, err := parseAff(aff)
	if err != nil {
		return nil, fmt.Errorf("hunspell: parse aff %s: %w", affPath, err)
	}

	dic, err := readMapped(dicPath)
	if err != nil {
		return nil, fmt.Errorf("hunspell: read dic: %w", err)
	}
	vocab, err := parseDic(dic, rules)
	if err != nil {
		return nil, fmt.Errorf("hunspell: parse dic %s: %w", dicPath, err)
	}

	return &Speller{
		vocab:      vocab,
		try:        try,
		reps:       reps,
		maxSuggest: 5,
	}, nil
}

func readMapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()
	out := make([]byte, len(m))
	copy(out, m)
	return out, nil
}

// SetExtra registers an additional validity source, e.g. an admin-managed
// custom dictionary. A word the extra source accepts is never flagged.
func (s *Speller) SetExtra(fn func(word string) bool) { s.extra = fn }

// Spell reports whether word is valid. Empty words are valid.
func (s *Speller) Spell(word string) bool {
	if word == "" {
		return true
	}
	if _, ok := s.vocab[word]; ok {
		return true
	}
	return s.extra != nil && s.extra(word)
}

// Suggest returns up to five correction candidates ordered by edit distance,
// then corpus frequency. The REP table is tried first: it encodes the
// dictionary author's known confusion patterns.
func (s *Speller) Suggest(word string) []string {
	if word == "" || s.Spell(word) {
		return nil
	}

	seen := map[string]bool{word: true}
	var out []string
	add := func(cand string) {
		if !seen[cand] {
			seen[cand] = true
			out = append(out, cand)
		}
	}

	for _, cand := range s.repCandidates(word) {
		add(cand)
	}
	edits := s.editCandidates(word)
	rankCandidates(word, edits, s.vocab)
	for _, cand := range edits {
		add(cand)
	}

	if len(out) > s.maxSuggest {
		out = out[:s.maxSuggest]
	}
	return out
}

// repCandidates applies each REP substitution at every position and keeps
// results found in the vocabulary.
func (s *Speller) repCandidates(word string) []string {
	var cands []string
	for _, rp := range s.reps {
		idx := 0
		for {
			i := strings.Index(word[idx:], rp.from)
			if i < 0 {
				break
			}
			i += idx
			cand := word[:i] + rp.to + word[i+len(rp.from):]
			if _, ok := s.vocab[cand]; ok {
				cands = append(cands, cand)
			}
			idx = i + len(rp.from)
		}
	}
	rankCandidates(word, cands, s.vocab)
	return cands
}

// editCandidates generates distance-1 edits over the TRY alphabet and keeps
// the in-vocabulary ones.
func (s *Speller) editCandidates(word string) []string {
	runes := []rune(word)
	var cands []string
	keep := func(cand string) {
		if _, ok := s.vocab[cand]; ok {
			cands = append(cands, cand)
		}
	}

	for i := range runes {
		keep(string(runes[:i]) + string(runes[i+1:]))
	}
	for i := 0; i < len(runes)-1; i++ {
		swapped := append([]rune(nil), runes...)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		keep(string(swapped))
	}
	for i := range runes {
		for _, r := range s.try {
			if r == runes[i] {
				continue
			}
			keep(string(runes[:i]) + string(r) + string(runes[i+1:]))
		}
	}
	for i := 0; i <= len(runes); i++ {
		for _, r := range s.try {
			keep(string(runes[:i]) + string(r) + string(runes[i:]))
		}
	}
	return cands
}

func parseAff(data []byte) (try []rune, reps []repPair, rules map[byte][]affixRule, err error) {
	rules = make(map[byte][]affixRule)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "TRY":
			if len(fields) >= 2 {
				try = []rune(fields[1])
			}
		case "REP":
			// The first REP line is the table size, later ones are pairs.
			if len(fields) == 3 {
				reps = append(reps, repPair{from: fields[1], to: fields[2]})
			}
		case "SFX", "PFX":
			// Header: SFX flag crossproduct count. Rule: SFX flag strip add cond.
			if len(fields) < 4 {
				continue
			}
			if _, convErr := strconv.Atoi(fields[3]); convErr == nil && len(fields) == 4 {
				continue // header line
			}
			flag := fields[1][0]
			strip := fields[2]
			if strip == "0" {
				strip = ""
			}
			add := fields[3]
			if i := strings.IndexByte(add, '/'); i >= 0 {
				add = add[:i] // continuation flags are not supported
			}
			if add == "0" {
				add = ""
			}
			cond := "."
			if len(fields) >= 5 {
				cond = fields[4]
			}
			rules[flag] = append(rules[flag], affixRule{
				strip:     strip,
				add:       add,
				condition: cond,
				prefix:    fields[0] == "PFX",
			})
		}
	}
	return try, reps, rules, sc.Err()
}

func parseDic(data []byte, rules map[byte][]affixRule) (map[string]int64, error) {
	vocab := make(map[string]int64)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if _, err := strconv.Atoi(line); err == nil {
				continue // leading word count
			}
		}
		// word[/flags][\tmorph...]
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		word := line
		var flags string
		if i := strings.IndexByte(line, '/'); i >= 0 {
			word, flags = line[:i], line[i+1:]
		}
		if word == "" {
			continue
		}
		vocab[word]++
		for _, flag := range []byte(flags) {
			for _, r := range rules[flag] {
				if derived, ok := r.apply(word); ok {
					vocab[derived]++
				}
			}
		}
	}
	return vocab, sc.Err()
}

func (r affixRule) apply(word string) (string, bool) {
	if r.prefix {
		if r.strip != "" && !strings.HasPrefix(word, r.strip) {
			return "", false
		}
		if !condMatches(r.condition, word, true) {
			return "", false
		}
		return r.add + strings.TrimPrefix(word, r.strip), true
	}
	if r.strip != "" && !strings.HasSuffix(word, r.strip) {
		return "", false
	}
	if !condMatches(r.condition, word, false) {
		return "", false
	}
	return strings.TrimSuffix(word, r.strip) + r.add, true
}

// condMatches implements the affix condition mini-language: a sequence of
// literal runes and [set] / [^set] groups anchored at the word edge.
func condMatches(cond, word string, prefix bool) bool {
	if cond == "." || cond == "" {
		return true
	}
	var groups []condGroup
	runes := []rune(cond)
	for i := 0; i < len(runes); {
		if runes[i] == '[' {
			j := i + 1
			neg := j < len(runes) && runes[j] == '^'
			if neg {
				j++
			}
			var set []rune
			for j < len(runes) && runes[j] != ']' {
				set = append(set, runes[j])
				j++
			}
			groups = append(groups, condGroup{set: set, negate: neg})
			i = j + 1
		} else {
			groups = append(groups, condGroup{set: []rune{runes[i]}})
			i++
		}
	}

	w := []rune(word)
	if len(w) < len(groups) {
		return false
	}
	for k, g := range groups {
		var r rune
		if prefix {
			r = w[k]
		} else {
			r = w[len(w)-len(groups)+k]
		}
		if !g.matches(r) {
			return false
		}
	}
	return true
}

type condGroup struct {
	set    []rune
	negate bool
}

func (g condGroup) matches(r rune) bool {
	for _, c := range g.set {
		if c == '.' || c == r {
			return !g.negate
		}
	}
	return g.negate
}
