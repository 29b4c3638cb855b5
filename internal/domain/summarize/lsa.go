package summarize

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/forPelevin/vidsum/internal/domain/nlp"
)

// lsa ranks sentences by their length in the latent topic space given by
// the SVD of the term-by-sentence matrix.
type lsa struct {
	smooth float64
}

func (a lsa) Rate(ss []nlp.Sentence) []float64 {
	out := make([]float64, len(ss))
	terms := map[string]int{}
	for _, s := range ss {
		for _, t := range s.Terms() {
			if _, ok := terms[t]; !ok {
				terms[t] = len(terms)
			}
		}
	}
	if len(terms) == 0 || len(ss) == 0 {
		return out
	}

	m := mat.NewDense(len(terms), len(ss), nil)
	for j, s := range ss {
		for _, t := range s.Terms() {
			i := terms[t]
			m.Set(i, j, m.At(i, j)+1)
		}
	}
	a.smoothFrequencies(m)

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return out
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	for j := range ss {
		var sum float64
		for i := range sigma {
			sum += sigma[i] * sigma[i] * v.At(j, i) * v.At(j, i)
		}
		out[j] = math.Sqrt(sum)
	}
	return out
}

// smoothFrequencies rescales every column by its max term count and lifts
// it by the smoothing factor.
func (a lsa) smoothFrequencies(m *mat.Dense) {
	rows, cols := m.Dims()
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, m)
		max := 0.0
		for _, x := range col {
			max = math.Max(max, x)
		}
		if max == 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			m.Set(i, j, a.smooth+(1-a.smooth)*col[i]/max)
		}
	}
}
