package summarize

import "github.com/forPelevin/vidsum/internal/domain/nlp"

// edmundson combines cue phrases (bonus minus stigma words), key words
// (frequent bonus words) and sentence location.
type edmundson struct {
	bonus, stigma, null map[string]struct{}

	cueWeight, keyWeight, locationWeight float64
	keyThreshold                         float64
}

func newEdmundson(w WordLists, lang nlp.Language) edmundson {
	return edmundson{
		bonus:          lang.Stems(w.Bonus),
		stigma:         lang.Stems(w.Stigma),
		null:           lang.Stems(w.Null),
		cueWeight:      1,
		keyWeight:      0,
		locationWeight: 1,
		keyThreshold:   0.5,
	}
}

func (a edmundson) Rate(ss []nlp.Sentence) []float64 {
	out := make([]float64, len(ss))
	key := a.keyWords(ss)
	for i, s := range ss {
		var cue, k float64
		for j, st := range s.Stems {
			if _, ok := a.null[st]; ok {
				continue
			}
			if _, ok := a.bonus[st]; ok {
				cue++
			}
			if _, ok := a.stigma[st]; ok {
				cue--
			}
			if _, ok := key[st]; ok && !s.Stop[j] {
				k++
			}
		}
		out[i] = a.cueWeight*cue + a.keyWeight*k + a.locationWeight*location(i, len(ss))
	}
	return out
}

// keyWords are bonus stems whose document frequency is above keyThreshold
// of the most frequent bonus stem.
func (a edmundson) keyWords(ss []nlp.Sentence) map[string]struct{} {
	counts := map[string]int{}
	max := 0
	for _, s := range ss {
		for _, st := range s.Stems {
			if _, ok := a.bonus[st]; !ok {
				continue
			}
			counts[st]++
			if counts[st] > max {
				max = counts[st]
			}
		}
	}
	out := map[string]struct{}{}
	for st, n := range counts {
		if float64(n)/float64(max) > a.keyThreshold {
			out[st] = struct{}{}
		}
	}
	return out
}

// location favors the opening and closing lines of the track.
func location(i, n int) float64 {
	var r float64
	if i == 0 {
		r++
	}
	if i == n-1 {
		r++
	}
	return r
}
