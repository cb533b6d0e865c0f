package text

import (
	"fmt"
	"os"
	"strings"

	"github.com/bbalet/stopwords"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/language"
)

// languages with a built-in bbalet/stopwords list
var builtinLanguages = mapset.NewSet(
	"ar", "bg", "cs", "da", "de", "el", "en", "es", "fa", "fi", "fr", "hu",
	"id", "it", "ja", "km", "lv", "nl", "no", "pl", "pt", "ro", "ru", "sk",
	"sv", "th", "tr",
)

// StopwordSet reports membership in a fixed stopword list
type StopwordSet interface {
	Contains(word string) bool
}

// listStopwords checks words against the bbalet/stopwords list of a language
// plus a set of extra words
type listStopwords struct {
	lang  string
	extra mapset.Set[string]
}

// NewStopwords creates the stopword set for lang. The words of a non-empty
// file, one per line, are added to the built-in list of lang along with extra
func NewStopwords(lang, file string, extra []string) (StopwordSet, error) {
	code, err := languageCode(lang)
	if err != nil {
		return nil, err
	}

	set := mapset.NewThreadUnsafeSet[string]()
	addWords(set, extra)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load stopwords file %s: %w", file, err)
		}
		addWords(set, strings.Split(string(data), "\n"))
	}
	return &listStopwords{lang: code, extra: set}, nil
}

// languageCode resolves lang to the base code of a built-in list; "" is English
func languageCode(lang string) (string, error) {
	if lang == "" {
		return "en", nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("unsupported stopword language %q: %w", lang, err)
	}
	base, _ := tag.Base()
	if !builtinLanguages.Contains(base.String()) {
		return "", fmt.Errorf("unsupported stopword language %q", lang)
	}
	return base.String(), nil
}

func addWords(set mapset.Set[string], words []string) {
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set.Add(w)
		}
	}
}

// Contains reports whether a lowercase word is a stopword
func (s *listStopwords) Contains(word string) bool {
	if s.extra.Contains(word) {
		return true
	}
	return strings.TrimSpace(stopwords.CleanString(word, s.lang, false)) == ""
}
