package summarize

import "github.com/forPelevin/vidsum/internal/domain/nlp"

// luhn rates a sentence by its densest cluster of significant words.
// Significant words are non-stop stems seen more than once in the document.
type luhn struct {
	maxGap int
}

func (a luhn) Rate(ss []nlp.Sentence) []float64 {
	freq := map[string]int{}
	for _, s := range ss {
		for _, t := range s.Terms() {
			freq[t]++
		}
	}
	significant := map[string]bool{}
	for t, n := range freq {
		if n > 1 {
			significant[t] = true
		}
	}

	out := make([]float64, len(ss))
	for i, s := range ss {
		flags := make([]bool, len(s.Stems))
		for j, st := range s.Stems {
			flags[j] = !s.Stop[j] && significant[st]
		}
		out[i] = a.rateChunks(flags)
	}
	return out
}

// rateChunks returns max(significant^2 / length) over chunks; a chunk
// closes after maxGap insignificant words in a row.
func (a luhn) rateChunks(flags []bool) float64 {
	var best float64
	inChunk := false
	var sig, length, gap int
	closeChunk := func() {
		// trailing insignificant words don't count toward length
		l := length - gap
		if sig > 1 && l > 0 {
			if r := float64(sig*sig) / float64(l); r > best {
				best = r
			}
		}
		inChunk, sig, length, gap = false, 0, 0, 0
	}
	for _, f := range flags {
		switch {
		case f && !inChunk:
			inChunk, sig, length, gap = true, 1, 1, 0
		case inChunk:
			length++
			if f {
				sig++
				gap = 0
			} else {
				gap++
			}
		}
		if inChunk && gap >= a.maxGap {
			closeChunk()
		}
	}
	if inChunk {
		closeChunk()
	}
	return best
}
