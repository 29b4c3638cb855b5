package nlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range Languages() {
		t.Run(name, func(t *testing.T) {
			l, err := Lookup(name)
			require.NoError(t, err)
			require.Equal(t, name, l.Name())
			require.NotEmpty(t, l.stop)
		})
	}

	l, err := Lookup("  English ")
	require.NoError(t, err)
	require.Equal(t, "english", l.Name())

	_, err = Lookup("klingon")
	require.True(t, errors.Is(err, ErrUnknownLanguage))
}

func TestWords(t *testing.T) {
	l, err := Lookup("english")
	require.NoError(t, err)

	got := l.Words("(3) Don't PANIC, it's 42 km'")
	require.Equal(t, []string{"3", "don't", "panic", "it's", "42", "km"}, got)
	require.Empty(t, l.Words(" ,;- "))
}

func TestTokenize_DropsStopWordsAndStems(t *testing.T) {
	l, err := Lookup("english")
	require.NoError(t, err)

	s := l.Tokenize("The runners were running quickly")
	require.Equal(t, []string{"the", "runners", "were", "running", "quickly"}, s.Words)
	require.Equal(t, []bool{true, false, true, false, false}, s.Stop)
	require.Len(t, s.Stems, len(s.Words))
	require.Equal(t, []string{"runner", "run", "quick"}, s.Terms())
}

func TestStems(t *testing.T) {
	l, err := Lookup("english")
	require.NoError(t, err)

	got := l.Stems([]string{"Important", "keys"})
	require.Contains(t, got, l.Stem("important"))
	require.Contains(t, got, "key")
}
