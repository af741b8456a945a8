package grammar

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ASCII punctuation plus the danda, stripped from both sides before
// alignment so punctuation-only differences never surface as errors.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~।"

// Structural findings get IDs far above the spelling pass so the two ID
// spaces cannot collide before final renumbering.
const classifyIDBase = 10000

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

func cleanWords(s string) []string {
	return strings.Fields(stripPunct(s))
}

// Classify aligns a sentence against its model correction and maps each
// non-equal diff opcode to one Error. The context of every produced error is
// the full original sentence.
func Classify(original, corrected string) []Error {
	origWords := cleanWords(original)
	corrWords := cleanWords(corrected)
	if wordsEqual(origWords, corrWords) {
		return nil
	}

	m := difflib.NewMatcher(origWords, corrWords)
	id := classifyIDBase
	var errs []Error
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			errs = append(errs, classifyReplace(op, origWords, corrWords, original, id))
			id++
		case 'd':
			errs = append(errs, classifyDelete(op, origWords, original, id))
			id++
		case 'i':
			errs = append(errs, classifyInsert(op, origWords, corrWords, original, id))
			id++
		}
	}
	return errs
}

func classifyReplace(op difflib.OpCode, origWords, corrWords []string, original string, id int) Error {
	typ, msg := TypeGrammar, "Grammar correction suggested"
	if op.I2-op.I1 == 1 && op.J2-op.J1 == 1 {
		if r, ok := matchReplaceRule(origWords[op.I1], corrWords[op.J1]); ok {
			typ, msg = r.typ, r.message
		}
	}
	return Error{
		ID:         id,
		Type:       typ,
		Message:    msg,
		Original:   strings.Join(origWords[op.I1:op.I2], " "),
		Suggestion: strings.Join(corrWords[op.J1:op.J2], " "),
		Context:    original,
	}
}

func classifyDelete(op difflib.OpCode, origWords []string, original string, id int) Error {
	chunk := strings.Join(origWords[op.I1:op.I2], " ")
	typ, msg := TypeDeletion, "Word(s) may be unnecessary"
	// A deleted chunk that duplicates the words right before it is a
	// repetition, not a free-standing removal.
	if n := op.I2 - op.I1; op.I1 >= n && strings.Join(origWords[op.I1-n:op.I1], " ") == chunk {
		typ, msg = TypeRepetition, "Word(s) repeated"
	}
	return Error{
		ID:         id,
		Type:       typ,
		Message:    msg,
		Original:   chunk,
		Suggestion: "",
		Context:    original,
	}
}

func classifyInsert(op difflib.OpCode, origWords, corrWords []string, original string, id int) Error {
	inserted := strings.Join(corrWords[op.J1:op.J2], " ")
	var origChunk, sugChunk string
	switch {
	case op.I1 > 0 && op.I1 < len(origWords):
		// Interior insertion: show one anchor word on each side.
		origChunk = origWords[op.I1-1] + " " + origWords[op.I1]
		sugChunk = origWords[op.I1-1] + " " + inserted + " " + origWords[op.I1]
	case op.I1 == 0:
		if len(origWords) > 0 {
			origChunk = origWords[0]
			sugChunk = inserted + " " + origWords[0]
		} else {
			origChunk = "(empty)"
			sugChunk = inserted
		}
	default: // insertion at the very end
		origChunk = origWords[len(origWords)-1]
		sugChunk = origChunk + " " + inserted
	}
	return Error{
		ID:         id,
		Type:       TypeInsertion,
		Message:    "Missing word suggested",
		Original:   origChunk,
		Suggestion: sugChunk,
		Context:    original,
	}
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
