package converge

import (
	"context"

	"github.com/forPelevin/vidsum/internal/domain/document"
	"github.com/forPelevin/vidsum/internal/domain/nlp"
	"github.com/forPelevin/vidsum/internal/domain/regions"
	"github.com/forPelevin/vidsum/internal/domain/summarize"
	"github.com/forPelevin/vidsum/internal/types"
)

// Pipeline is the Selector that rebuilds the document, summarizes it and
// resolves regions on every call.
type Pipeline struct {
	Cues       []types.Cue
	Summarizer summarize.Summarizer
	Kind       summarize.Kind
	Language   nlp.Language
}

func (p Pipeline) Select(_ context.Context, n float64) ([]types.Region, error) {
	doc := document.Build(p.Cues)
	sel, err := p.Summarizer.Summarize(doc, summarize.Request{Kind: p.Kind, Count: n, Language: p.Language})
	if err != nil {
		return nil, err
	}
	return regions.Resolve(doc, sel, p.Cues)
}

// Sentences is the number of selectable sentences, the upper bound for Bisect.
func (p Pipeline) Sentences() int { return len(document.Build(p.Cues).Sentences) }

var _ Selector = Pipeline{}
