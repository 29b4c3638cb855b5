package regions

import (
	"fmt"

	"github.com/forPelevin/vidsum/internal/domain/document"
	"github.com/forPelevin/vidsum/internal/types"
)

// Resolve maps selected sentences back to the time range of their cue.
// The side table is consulted first. Sentences it does not know, such as
// ones split out of Document.Text by hand, must carry a marker in their text.
func Resolve(doc document.Document, selected []document.Sentence, cues []types.Cue) ([]types.Region, error) {
	out := make([]types.Region, 0, len(selected))
	for _, s := range selected {
		idx, ok := doc.CueIndex(s.Key)
		if !ok {
			var err error
			idx, err = document.ParseMarker(s.Text)
			if err != nil {
				return nil, err
			}
		}
		if idx < 0 || idx >= len(cues) {
			return nil, fmt.Errorf("%w: cue %d out of range [0,%d)", document.ErrMarkerNotFound, idx, len(cues))
		}
		c := cues[idx]
		out = append(out, types.Region{CueIndex: c.Index, Start: c.Start, End: c.End})
	}
	return out, nil
}

// Total sums region durations.
func Total(rs []types.Region) float64 {
	var sum float64
	for _, r := range rs {
		sum += r.Duration()
	}
	return sum
}

func TotalCues(cues []types.Cue) float64 {
	var sum float64
	for _, c := range cues {
		sum += c.Duration()
	}
	return sum
}
