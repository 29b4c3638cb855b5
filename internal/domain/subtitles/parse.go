package subtitles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/forPelevin/vidsum/internal/types"
)

type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

var ErrParse = errors.New("malformed subtitles")

// ParseError points at the block (1-based) and line that could not be read.
type ParseError struct {
	Block int
	Line  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("subtitle block %d (%q): %v", e.Block, e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// FormatFromPath picks the format by extension; anything that is not .vtt is read as SRT.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".vtt") {
		return FormatVTT
	}
	return FormatSRT
}

func LoadFile(path string) ([]types.Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCues(f, FormatFromPath(path))
}

// LoadCues reads an ordered cue track. Cue indices are positions in the track.
func LoadCues(r io.Reader, format Format) ([]types.Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	blocks := splitBlocks(data)
	switch format {
	case FormatVTT:
		return parseVTT(blocks)
	default:
		return parseSRT(blocks)
	}
}

func splitBlocks(data []byte) [][]string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out [][]string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimRight(l, " \t")
		if strings.TrimSpace(l) == "" {
			flush()
			continue
		}
		cur = append(cur, l)
	}
	flush()
	return out
}

func parseSRT(blocks [][]string) ([]types.Cue, error) {
	cues := make([]types.Cue, 0, len(blocks))
	for i, blk := range blocks {
		timing := 0
		if !strings.Contains(blk[0], "-->") {
			// first line is the (often unreliable) sequence number
			if _, err := strconv.Atoi(strings.TrimSpace(blk[0])); err != nil {
				return nil, &ParseError{Block: i + 1, Line: blk[0], Err: errors.New("expected cue number")}
			}
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

// parseTimingLine reads "start --> end [settings]".
func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("invalid timing separator")
	}
	endField := strings.Fields(parts[1])
	if len(endField) == 0 {
		return 0, 0, errors.New("missing end time")
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err := parseTimestamp(endField[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("end %.3f is not after start %.3f", end, start)
	}
	return start, end, nil
}

// parseTimestamp converts [HH:]MM:SS[,.]mmm to seconds.
func parseTimestamp(s string) (float64, error) {
	i := strings.LastIndexAny(s, ",.")
	if i < 0 {
		return 0, fmt.Errorf("missing millis in %q", s)
	}
	ms, err := strconv.Atoi(s[i+1:])
	if err != nil || !digits(s[i+1:]) || len(s[i+1:]) > 3 {
		return 0, fmt.Errorf("invalid millis in %q", s)
	}
	// "5" after the separator means 500ms
	for n := len(s[i+1:]); n < 3; n++ {
		ms *= 10
	}

	hms := strings.Split(s[:i], ":")
	if len(hms) < 2 || len(hms) > 3 {
		return 0, fmt.Errorf("invalid h:m:s in %q", s)
	}
	var vals [3]int
	off := 3 - len(hms)
	for j, p := range hms {
		v, err := strconv.Atoi(p)
		if err != nil || !digits(p) {
			return 0, fmt.Errorf("invalid field %q in %q", p, s)
		}
		vals[off+j] = v
	}
	h, m, sec := vals[0], vals[1], vals[2]
	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}

// digits reports whether s is non-empty and ASCII digits only; Atoi alone
// accepts a leading sign.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
