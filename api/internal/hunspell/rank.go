package hunspell

import "sort"

// rankCandidates orders cands in place by Damerau-Levenshtein distance from
// word, breaking ties by dictionary weight, then lexicographically so the
// preferred candidate is stable across runs.
func rankCandidates(word string, cands []string, weight map[string]int64) {
	dist := make(map[string]int, len(cands))
	for _, c := range cands {
		dist[c] = unitDL(word, c)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if dist[a] != dist[b] {
			return dist[a] < dist[b]
		}
		if weight[a] != weight[b] {
			return weight[a] > weight[b]
		}
		return a < b
	})
}

// unitDL is the unit-cost Damerau-Levenshtein distance over runes, with a
// sliding three-row DP to keep allocation flat.
func unitDL(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}
