package summarize

// WordLists are the cue-phrase vocabularies for one language.
type WordLists struct {
	Bonus  []string `yaml:"bonus"`
	Stigma []string `yaml:"stigma"`
	Null   []string `yaml:"null"`
}

// CueWords holds per-language word lists, keyed by language name.
type CueWords map[string]WordLists

// For returns the configured lists for lang, falling back to the built-in
// defaults for any list left empty.
func (c CueWords) For(lang string) WordLists {
	def := DefaultCueWords()[lang]
	got, ok := c[lang]
	if !ok {
		return def
	}
	if len(got.Bonus) == 0 {
		got.Bonus = def.Bonus
	}
	if len(got.Stigma) == 0 {
		got.Stigma = def.Stigma
	}
	if len(got.Null) == 0 {
		got.Null = def.Null
	}
	return got
}

func DefaultCueWords() CueWords {
	return CueWords{
		"english": {
			Bonus: []string{
				"important", "key", "secret", "mistake", "never", "always", "remember",
				"first", "finally", "must", "truth", "because", "why", "problem",
				"answer", "best", "love", "need", "everything", "nothing",
			},
			Stigma: []string{"maybe", "perhaps", "whatever", "anyway", "probably", "hardly", "somehow", "stuff"},
			Null:   []string{"said", "says", "got", "get", "going", "know", "think", "thing", "things"},
		},
		"spanish": {
			Bonus:  []string{"importante", "clave", "secreto", "nunca", "siempre", "recuerda", "primero", "verdad", "problema", "necesito"},
			Stigma: []string{"quizás", "tal", "vez", "cualquier", "probablemente"},
			Null:   []string{"dijo", "decir", "cosa", "cosas"},
		},
		"french": {
			Bonus:  []string{"important", "clé", "secret", "jamais", "toujours", "souviens", "premier", "vérité", "problème", "besoin"},
			Stigma: []string{"peut-être", "probablement", "bref", "truc"},
			Null:   []string{"dit", "dire", "chose", "choses"},
		},
		"russian": {
			Bonus:  []string{"важно", "главное", "секрет", "никогда", "всегда", "помни", "правда", "проблема", "нужно"},
			Stigma: []string{"наверное", "возможно", "вообще", "короче"},
			Null:   []string{"сказал", "говорит", "вещь"},
		},
	}
}
