// Package text normalizes raw messages into lowercase stemmed token strings
package text

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Normalizer turns a raw message into a single-spaced string of lowercase,
// stemmed, non-stopword tokens. It holds no per-message state
type Normalizer struct {
	nonAlpha   *regexp.Regexp
	stopwords  StopwordSet
	stemmer    Stemmer
	lemmatizer Lemmatizer
	logger     *zap.Logger
}

// NewNormalizer creates a normalizer. lemmatizer may be nil
func NewNormalizer(stopwords StopwordSet, stemmer Stemmer, lemmatizer Lemmatizer, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		nonAlpha:   regexp.MustCompile(`[^a-zA-Z]`),
		stopwords:  stopwords,
		stemmer:    stemmer,
		lemmatizer: lemmatizer,
		logger:     logger,
	}
}

// Normalize returns the normalized form of one message
func (n *Normalizer) Normalize(message string) string {
	letters := n.nonAlpha.ReplaceAllString(message, " ")

	words := strings.Fields(letters)
	kept := words[:0]
	for _, w := range words {
		w = strings.ToLower(w)
		if n.stopwords.Contains(w) {
			continue
		}
		if n.lemmatizer != nil {
			w = strings.ToLower(n.lemmatizer.Lemma(w))
		}
		// lemma and stem may both land on a stopword ("having" -> "have")
		w = n.stemmer.Stem(w)
		if n.stopwords.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// NormalizeAll normalizes every message, preserving order
func (n *Normalizer) NormalizeAll(messages []string) []string {
	out := make([]string, len(messages))
	empty := 0
	for i, m := range messages {
		out[i] = n.Normalize(m)
		if out[i] == "" {
			empty++
		}
	}
	n.logger.Debug("Normalized messages",
		zap.Int("messages", len(messages)),
		zap.Int("empty", empty))
	return out
}
