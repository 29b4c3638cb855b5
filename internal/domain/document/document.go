// Package document turns a cue track into a plain-text document whose
// sentences each map back to exactly one cue.
package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/forPelevin/vidsum/internal/types"
)

var ErrMarkerNotFound = errors.New("sentence has no cue marker")

// Sentence is one emitted unit. Key is unique per sentence and indexes the
// side table; Text is the cleaned cue text without its marker.
type Sentence struct {
	Key      string
	CueIndex int
	Text     string
}

// marked returns the sentence as it appears in Document.Text.
func (s Sentence) marked() string { return Marker(s.CueIndex) + s.Text + "." }

type Document struct {
	Text      string
	Sentences []Sentence

	byKey map[string]int
}

func (d Document) Empty() bool { return len(d.Sentences) == 0 }

// CueIndex looks a sentence key up in the side table.
func (d Document) CueIndex(key string) (int, bool) {
	i, ok := d.byKey[key]
	return i, ok
}

// Build emits one sentence per dialogue cue, in cue order. Cues whose text
// starts with '[' are annotations and are left out.
func Build(cues []types.Cue) Document {
	d := Document{byKey: make(map[string]int, len(cues))}
	var b strings.Builder
	for _, c := range cues {
		if strings.HasPrefix(c.Text, "[") {
			continue
		}
		s := Sentence{Key: uuid.NewString(), CueIndex: c.Index, Text: clean(c.Text)}
		d.byKey[s.Key] = s.CueIndex
		d.Sentences = append(d.Sentences, s)

		b.WriteString(Marker(c.Index))
		b.WriteString(s.Text)
		b.WriteString(". ")
	}
	d.Text = b.String()
	return d
}

var terminators = strings.NewReplacer(".", "", "?", "", "!", "")

// clean drops line breaks, trims ellipsis runs from both ends and removes
// every sentence terminator so the tokenizer sees one sentence per cue.
func clean(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.Trim(text, ".")
	return terminators.Replace(text)
}

func Marker(index int) string { return "(" + strconv.Itoa(index) + ") " }

var reMarker = regexp.MustCompile(`\(([0-9]+)\)`)

// ParseMarker extracts the cue index from the first marker in s.
func ParseMarker(s string) (int, error) {
	m := reMarker.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMarkerNotFound, s)
	}
	i, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMarkerNotFound, s, err)
	}
	return i, nil
}
