package subtitles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forPelevin/vidsum/internal/types"
)

func TestRetime_Contiguous(t *testing.T) {
	cues := []types.Cue{
		{Index: 0, Start: 0, End: 5, Text: "Hello there"},
		{Index: 1, Start: 5, End: 12, Text: "[door slam]"},
		{Index: 2, Start: 12, End: 20, Text: "Goodbye now"},
	}
	regions := []types.Region{
		{CueIndex: 0, Start: 0, End: 5},
		{CueIndex: 2, Start: 12, End: 20},
	}
	got := Retime(regions, cues)
	require.Len(t, got, 2)
	require.Equal(t, 0.0, got[0].Start)
	require.Equal(t, 5.0, got[0].End)
	require.Equal(t, 5.0, got[1].Start)
	require.Equal(t, 13.0, got[1].End)
	require.Equal(t, "Goodbye now", got[1].Text)
}

func TestRenderSRT_RoundTrip(t *testing.T) {
	cues := []types.Cue{
		{Start: 0, End: 1.234, Text: "one"},
		{Start: 1.234, End: 2, Text: "  "},
		{Start: 2, End: 3723.5, Text: "two\nlines"},
	}
	out := RenderSRT(cues)
	require.True(t, strings.HasPrefix(out, "1\n00:00:00,000 --> 00:00:01,234\none\n"), out)
	require.Contains(t, out, "\n2\n00:00:02,000 --> 01:02:03,500\ntwo\nlines\n")

	back, err := LoadCues(strings.NewReader(out), FormatSRT)
	require.NoError(t, err)
	require.Len(t, back, 2)
	require.InDelta(t, 3723.5, back[1].End, 1e-9)
}

func TestSrtTime_Format(t *testing.T) {
	got := srtTime(61*time.Second + 234*time.Millisecond)
	if got != "00:01:01,234" {
		t.Fatalf("unexpected srtTime: %s", got)
	}
}
