package grammar

import "strings"

// ComputeStats derives the quality scores for a report. The linear formula
// is part of the API contract: clients render these numbers directly.
func ComputeStats(text string, errs []Error) Stats {
	words := len(strings.Fields(text))
	if words == 0 {
		return Stats{Grammar: 100, Fluency: 100, Clarity: 100, Engagement: 100}
	}

	var spelling, grammarish, insertion, deletion int
	for _, e := range errs {
		switch e.Type {
		case TypeSpelling:
			spelling++
		case TypeGrammar, TypeGenderAgreement, TypeNumberAgreement:
			grammarish++
		case TypeInsertion:
			insertion++
		case TypeDeletion:
			deletion++
		}
	}
	total := len(errs)

	return Stats{
		Grammar:     clampScore(100 - spelling*5 - grammarish*8),
		Fluency:     clampScore(100 - grammarish*5 - insertion*4 - deletion*3),
		Clarity:     clampScore(100 - total*4),
		Engagement:  clampScore(max(70, 100-total*3)),
		TotalWords:  words,
		TotalErrors: total,
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
