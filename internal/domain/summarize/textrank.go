package summarize

import (
	"math"

	"github.com/forPelevin/vidsum/internal/domain/nlp"
)

// textRank scores each sentence by its weighted degree in the word-overlap
// similarity graph.
type textRank struct{}

func (textRank) Rate(ss []nlp.Sentence) []float64 {
	sets := make([]map[string]struct{}, len(ss))
	for i, s := range ss {
		sets[i] = map[string]struct{}{}
		for _, t := range s.Terms() {
			sets[i][t] = struct{}{}
		}
	}
	out := make([]float64, len(ss))
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			w := overlap(sets[i], sets[j])
			out[i] += w
			out[j] += w
		}
	}
	return out
}

func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	den := math.Log(float64(len(a))) + math.Log(float64(len(b)))
	if den <= 0 {
		den = 1
	}
	return float64(common) / den
}
