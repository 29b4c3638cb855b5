// Package summarize ranks document sentences with one of several extractive
// algorithms and returns the best ones in document order.
package summarize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/forPelevin/vidsum/internal/domain/document"
	"github.com/forPelevin/vidsum/internal/domain/nlp"
)

var (
	ErrUnknownSummarizer   = errors.New("unknown summarizer")
	ErrEmptyDocument       = errors.New("document has no sentences")
	ErrInsufficientContent = errors.New("insufficient content for requested sentence count")
)

type Kind string

const (
	FrequencyRank       Kind = "frequency-rank"
	CuePhraseWeighted   Kind = "cue-phrase-weighted"
	LatentSemantic      Kind = "latent-semantic"
	CentralityEigenvect Kind = "graph-centrality-eigenvector"
	CentralityDegree    Kind = "graph-centrality-degree"
)

var aliases = map[string]Kind{
	"luhn":      FrequencyRank,
	"edmundson": CuePhraseWeighted,
	"lsa":       LatentSemantic,
	"lex-rank":  CentralityEigenvect,
	"text-rank": CentralityDegree,
}

func Kinds() []Kind {
	return []Kind{FrequencyRank, CuePhraseWeighted, LatentSemantic, CentralityEigenvect, CentralityDegree}
}

// ParseKind accepts canonical names and the short algorithm names (lsa, luhn, ...).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[s]; ok {
		return k, nil
	}
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSummarizer, s)
}

// Algorithm scores every sentence. Scores must not depend on how many
// sentences the caller will keep.
type Algorithm interface {
	Rate(sentences []nlp.Sentence) []float64
}

// Registry maps each Kind to a constructor for its algorithm.
type Registry struct {
	cue CueWords
}

func NewRegistry(cue CueWords) Registry { return Registry{cue: cue} }

func (r Registry) Algorithm(kind Kind, lang nlp.Language) (Algorithm, error) {
	switch kind {
	case FrequencyRank:
		return luhn{maxGap: 4}, nil
	case CuePhraseWeighted:
		return newEdmundson(r.cue.For(lang.Name()), lang), nil
	case LatentSemantic:
		return lsa{smooth: 0.4}, nil
	case CentralityEigenvect:
		return lexRank{threshold: 0.1, epsilon: 0.1, maxIter: 1000}, nil
	case CentralityDegree:
		return textRank{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSummarizer, kind)
	}
}

type Request struct {
	Kind Kind
	// Count is truncated to an integer.
	Count    float64
	Language nlp.Language
}

type Summarizer struct{ reg Registry }

func New(reg Registry) Summarizer { return Summarizer{reg: reg} }

// Summarize returns the int(Count) best sentences of doc in document order.
func (s Summarizer) Summarize(doc document.Document, req Request) ([]document.Sentence, error) {
	alg, err := s.reg.Algorithm(req.Kind, req.Language)
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, ErrEmptyDocument
	}
	n := len(doc.Sentences)
	if math.IsNaN(req.Count) || req.Count < 1 || req.Count >= float64(n+1) {
		return nil, fmt.Errorf("%w: %v requested, %d available", ErrInsufficientContent, req.Count, n)
	}
	count := int(req.Count)

	toks := make([]nlp.Sentence, n)
	for i, sent := range doc.Sentences {
		toks[i] = req.Language.Tokenize(sent.Text)
	}
	scores := alg.Rate(toks)
	for i, v := range scores {
		if math.IsNaN(v) {
			scores[i] = 0
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	keep := order[:count]
	sort.Ints(keep)

	out := make([]document.Sentence, 0, count)
	for _, i := range keep {
		out = append(out, doc.Sentences[i])
	}
	return out, nil
}
