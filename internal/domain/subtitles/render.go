package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/vidsum/internal/types"
)

// Retime lays the cues behind regions end to end, starting at zero, so the
// result lines up with the concatenated video.
func Retime(regions []types.Region, cues []types.Cue) []types.Cue {
	out := make([]types.Cue, 0, len(regions))
	var offset float64
	for i, r := range regions {
		text := ""
		if r.CueIndex >= 0 && r.CueIndex < len(cues) {
			text = cues[r.CueIndex].Text
		}
		out = append(out, types.Cue{
			Index: i,
			Start: offset,
			End:   offset + r.Duration(),
			Text:  text,
		})
		offset += r.Duration()
	}
	return out
}

// RenderSRT renders cues as SRT numbered from 1. Cues without text are dropped.
func RenderSRT(cues []types.Cue) string {
	var b strings.Builder
	n := 1
	for _, c := range cues {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		if n > 1 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteString("\n")
		b.WriteString(srtTime(c.StartDur()))
		b.WriteString(" --> ")
		b.WriteString(srtTime(c.EndDur()))
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
		n++
	}
	return b.String()
}

func srtTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	// round to the millisecond so 1.234s does not print as 1.233
	d = d.Round(time.Millisecond)
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	milli := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hs, ms, s, milli)
}
