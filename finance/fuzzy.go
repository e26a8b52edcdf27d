package finance

import "sort"

// Approximate keyword matching for the quick-entry parser. This reproduces
// the gestalt (Ratcliff/Obershelp) similarity ratio: twice the number of
// matching characters divided by the total length of both strings, where
// matches are counted recursively around the longest common substring.

func similarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ar, br)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	ai, bi, size := longestCommonRun(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

func longestCommonRun(a, b []rune) (ai, bi, size int) {
	// lengths[j] holds the length of the common run ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}

// closeMatches returns up to n candidates whose similarity to word is at
// least cutoff, best first. Ties keep candidate order, so results are
// deterministic for the sorted keyword lists.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	type scored struct {
		word  string
		score float64
		index int
	}
	var hits []scored
	for i, cand := range candidates {
		if s := similarity(word, cand); s >= cutoff {
			hits = append(hits, scored{cand, s, i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].index < hits[j].index
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.word
	}
	return out
}
