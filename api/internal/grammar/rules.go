package grammar

import "strings"

// replaceRule refines the error type of a one-word-for-one-word replace.
// Rules are evaluated top to bottom, first match wins.
type replaceRule struct {
	typ     string
	message string
	match   func(orig, corr string) bool
}

var replaceRules = []replaceRule{
	{TypeGenderAgreement, "Verb gender should match subject", isGenderSwap},
	{TypeNumberAgreement, "Plural form should be used", isPluralShift},
	{TypeSpelling, "Spelling correction", isKnownConfusion},
	{TypeGrammar, "Verb form correction", isVerbFormChange},
}

func matchReplaceRule(orig, corr string) (replaceRule, bool) {
	for _, r := range replaceRules {
		if r.match(orig, corr) {
			return r, true
		}
	}
	return replaceRule{}, false
}

// Canonical masculine/feminine vowel-ending swaps, e.g. गई ↔ गया.
func isGenderSwap(orig, corr string) bool {
	switch {
	case strings.HasSuffix(orig, "ई") && strings.HasSuffix(corr, "ा"),
		strings.HasSuffix(orig, "गई") && strings.HasSuffix(corr, "गया"),
		strings.HasSuffix(orig, "ा") && strings.HasSuffix(corr, "ी"),
		strings.HasSuffix(orig, "ी") && strings.HasSuffix(corr, "ा"):
		return true
	}
	return false
}

// Corrected word carries a plural marker the original lacks.
func isPluralShift(orig, corr string) bool {
	return (strings.Contains(corr, "ें") && !strings.Contains(orig, "ें")) ||
		(strings.Contains(corr, "ों") && !strings.Contains(orig, "ों"))
}

// Commonly confused spellings, e.g. जे vs झे.
var confusionPairs = [][2]string{
	{"जे", "झे"},
	{"का", "के"},
	{"की", "के"},
	{"मुजे", "मुझे"},
}

func isKnownConfusion(orig, corr string) bool {
	for _, p := range confusionPairs {
		wrong, right := p[0], p[1]
		if strings.Contains(orig, wrong) && strings.Contains(corr, right) {
			return true
		}
		if strings.Contains(orig, right) && strings.Contains(corr, wrong) {
			return true
		}
	}
	return false
}

// Tense and copula markers. A replace touching any of these reads as a verb
// form change.
var verbMarkers = []string{"है", "हैं", "था", "थी", "थे", "रहा", "रही", "रहे"}

func isVerbFormChange(orig, corr string) bool {
	for _, m := range verbMarkers {
		if strings.Contains(orig, m) || strings.Contains(corr, m) {
			return true
		}
	}
	return false
}
