// Package nlp holds the language-dependent pieces of summarization:
// word tokenization, stop words and stemming.
package nlp

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownLanguage = errors.New("unknown language")

//go:embed stopwords/*.txt
var stopwordFS embed.FS

var tags = map[string]language.Tag{
	"english": language.English,
	"spanish": language.Spanish,
	"french":  language.French,
	"russian": language.Russian,
}

// Languages lists the supported language names in sorted order.
func Languages() []string {
	out := make([]string, 0, len(tags))
	for k := range tags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Language struct {
	name string
	tag  language.Tag
	stop map[string]struct{}
}

// Sentence is the tokenized form of one document sentence. Stems and Stop
// are aligned with Words.
type Sentence struct {
	Words []string
	Stems []string
	Stop  []bool
}

// Terms returns the stems of the words that are not stop words.
func (s Sentence) Terms() []string {
	out := make([]string, 0, len(s.Stems))
	for i, st := range s.Stems {
		if !s.Stop[i] {
			out = append(out, st)
		}
	}
	return out
}

func Lookup(name string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	tag, ok := tags[name]
	if !ok {
		return Language{}, fmt.Errorf("%w %q (supported: %s)", ErrUnknownLanguage, name, strings.Join(Languages(), ", "))
	}
	b, err := stopwordFS.ReadFile("stopwords/" + name + ".txt")
	if err != nil {
		return Language{}, fmt.Errorf("stop words for %s: %w", name, err)
	}
	l := Language{name: name, tag: tag, stop: map[string]struct{}{}}
	for _, w := range strings.Fields(string(b)) {
		l.stop[l.lower(w)] = struct{}{}
	}
	return l, nil
}

func (l Language) Name() string { return l.name }

func (l Language) lower(s string) string { return cases.Lower(l.tag).String(s) }

// Words splits text on anything that is not a letter, digit or inner apostrophe.
func (l Language) Words(text string) []string {
	text = l.lower(norm.NFC.String(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (l Language) IsStopWord(w string) bool {
	_, ok := l.stop[l.lower(w)]
	return ok
}

// Stem returns the snowball stem, or the word itself when the stemmer rejects it.
func (l Language) Stem(w string) string {
	s, err := snowball.Stem(w, l.name, true)
	if err != nil || s == "" {
		return l.lower(w)
	}
	return s
}

func (l Language) Tokenize(text string) Sentence {
	words := l.Words(text)
	s := Sentence{Words: words, Stems: make([]string, len(words)), Stop: make([]bool, len(words))}
	for i, w := range words {
		s.Stems[i] = l.Stem(w)
		s.Stop[i] = l.IsStopWord(w)
	}
	return s
}

// Stems tokenizes and stems a word list, keeping stop words.
func (l Language) Stems(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		for _, t := range l.Words(w) {
			out[l.Stem(t)] = struct{}{}
		}
	}
	return out
}
