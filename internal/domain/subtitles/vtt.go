package subtitles

import (
	"errors"
	"strings"

	"github.com/forPelevin/vidsum/internal/types"
)

func parseVTT(blocks [][]string) ([]types.Cue, error) {
	cues := make([]types.Cue, 0, len(blocks))
	for i, blk := range blocks {
		if i == 0 && strings.HasPrefix(blk[0], "WEBVTT") {
			continue
		}
		if isVTTMetaBlock(blk[0]) {
			continue
		}
		timing := 0
		if !strings.Contains(blk[0], "-->") {
			// cue identifier
			timing = 1
		}
		if timing >= len(blk) {
			return nil, &ParseError{Block: i + 1, Line: blk[0], Err: errors.New("missing timing line")}
		}
		start, end, err := parseTimingLine(blk[timing])
		if err != nil {
			return nil, &ParseError{Block: i + 1, Line: blk[timing], Err: err}
		}
		cues = append(cues, types.Cue{
			Index: len(cues),
			Start: start,
			End:   end,
			Text:  strings.Join(blk[timing+1:], "\n"),
		})
	}
	return cues, nil
}

func isVTTMetaBlock(first string) bool {
	for _, p := range []string{"NOTE", "STYLE", "REGION"} {
		if first == p || strings.HasPrefix(first, p+" ") || strings.HasPrefix(first, p+"\t") {
			return true
		}
	}
	return false
}
