package summarize

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/forPelevin/vidsum/internal/domain/nlp"
)

// lexRank is eigenvector centrality over a thresholded tf-idf cosine graph.
type lexRank struct {
	threshold float64
	epsilon   float64
	maxIter   int
}

func (a lexRank) Rate(ss []nlp.Sentence) []float64 {
	n := len(ss)
	if n == 0 {
		return nil
	}
	tf := make([]map[string]float64, n)
	df := map[string]int{}
	for i, s := range ss {
		tf[i] = termFrequencies(s.Terms())
		for t := range tf[i] {
			df[t]++
		}
	}
	idf := make(map[string]float64, len(df))
	for t, c := range df {
		idf[t] = math.Log(float64(n) / float64(1+c))
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		degree := 0.0
		for j := 0; j < n; j++ {
			if cosine(tf[i], tf[j], idf) > a.threshold {
				m.Set(i, j, 1)
				degree++
			}
		}
		if degree == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			m.Set(i, j, m.At(i, j)/degree)
		}
	}
	return a.powerMethod(m, n)
}

func (a lexRank) powerMethod(m *mat.Dense, n int) []float64 {
	p := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		p.SetVec(i, 1/float64(n))
	}
	next := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)
	for iter := 0; iter < a.maxIter; iter++ {
		next.MulVec(m.T(), p)
		diff.SubVec(next, p)
		p.CopyVec(next)
		if floats.Norm(diff.RawVector().Data, 2) <= a.epsilon {
			break
		}
	}
	return mat.Col(nil, 0, p)
}

// termFrequencies divides each count by the largest count in the sentence.
func termFrequencies(terms []string) map[string]float64 {
	counts := map[string]float64{}
	max := 0.0
	for _, t := range terms {
		counts[t]++
		max = math.Max(max, counts[t])
	}
	for t := range counts {
		counts[t] /= max
	}
	return counts
}

func cosine(tf1, tf2 map[string]float64, idf map[string]float64) float64 {
	var num, d1, d2 float64
	for t, f1 := range tf1 {
		w := idf[t]
		d1 += (f1 * w) * (f1 * w)
		if f2, ok := tf2[t]; ok {
			num += f1 * f2 * w * w
		}
	}
	for t, f2 := range tf2 {
		w := idf[t]
		d2 += (f2 * w) * (f2 * w)
	}
	if d1 == 0 || d2 == 0 {
		return 0
	}
	return num / (math.Sqrt(d1) * math.Sqrt(d2))
}
